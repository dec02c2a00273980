/*
Package operation runs scope sources and actions over buffers and files.

	+-------------+
	|   Options   |
	| (sources,   |
	|  actions)   |
	+------+------+
	       |
	+------+------+      +-------------+
	|   Process   |<-----|   Runner    |
	| (one input) |      | (files/io)  |
	+------+------+      +-------------+
	       |
	+------+------+
	|    View     |
	| (fragments) |
	+-------------+

🎯 Process builds one view per input, checks the failure policy and applies
the actions. Views are never shared, so the Runner processes files in
parallel without locking anything but the console and the diff writer.

🔄 Runner.RunFiles flow:
 1. Discover files under a root with doublestar include and ignore globs
 2. Process each file on its own goroutine, bounded by Jobs
 3. Write changed files back, or render a diff in dry-run mode
 4. Apply FailAny and FailNone across all files

🔍 Example:

	res, err := operation.Process(ctx, "hello world", operation.Options{
		Sources: []scope.Source{src},
		Actions: []action.Action{action.Upper{}},
	})
*/
package operation
