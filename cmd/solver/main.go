// Command solver trains networks described by solver configuration files.
//
// Usage:
//
//	solver train --solver solver.yaml [--snapshot snap_iter_500.born.solverstate] [--gpu 0]
//	solver device --mode GPU
//	solver version
package main

func main() {
	Execute()
}
