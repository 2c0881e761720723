// Package harness executes a synthesized task set as periodic, core-pinned
// OS threads and measures how long each job takes relative to its WCET.
//
// A Harness is single-use. New compiles every task into a table of fragment
// closures and fails before any thread exists if a name cannot be resolved.
// Run then walks the lifecycle
//
//	Initialized -> Armed -> Running -> Draining -> Reported
//
// and Release moves a reported harness to Terminal, dropping its logs.
//
// Basic usage:
//
//	lib, _ := fragments.New(ts.Cores())
//	defer lib.Close()
//
//	h, err := harness.New(ts, lib,
//	    harness.WithRunDuration(5*time.Second),
//	    harness.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//	report, err := h.Run(ctx)
//	if err != nil {
//	    return err
//	}
//	_ = h.WriteLogs("out")
//	h.Release()
//
// Every task thread runs at the same SCHED_FIFO priority; Task.Priority is
// carried in the model only. Pinning or priority failures do not stop a run:
// they are logged and returned in Report.Warnings.
package harness
