/*
Package status holds the event model shared by the copy engine and its reporters.

	+-------------+        +-------------+
	|  operation  | -----> |  Reporter   |
	| (decisions) | Event  | (console,   |
	+-------------+        |  recorder)  |
	                       +-------------+

🎯 Purpose:
- Names the closed set of actions (create, identical, skip, conflict, force)
- Defines the Reporter sink the engine calls once per event
- Provides Recorder, an in-memory sink used by tests and summaries

📝 Reporters are stateless relative to the engine: the engine never reads
anything back from them.
*/
package status
