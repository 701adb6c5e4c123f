// Package examples contains runnable example programs demonstrating
// the sigevent and sys packages.
//
// # Examples
//
// The examples directory contains the following subdirectories:
//
//   - 01_periodic: A periodic timer, logging through diag
//   - 02_self_closing: A timer that deletes itself from its own callback
//   - 03_sys: The system call facade, including popen and poll
//
// # Running Examples
//
// Each example can be run from the examples directory:
//
//	cd sigevent/examples
//	go run ./01_periodic/
//	go run ./02_self_closing/
//	go run ./03_sys/
package examples
