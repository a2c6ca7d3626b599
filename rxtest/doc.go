// Package rxtest provides publisher implementations for exercising the
// bridge under controlled and adversarial schedules.
//
// ManualPublisher hands every signal to the test: the test decides when to
// grant the subscription, emit, complete or fail, which makes race orderings
// reproducible. ScriptedPublisher runs a canned script on its own goroutine,
// honouring (or deliberately ignoring) demand, for end-to-end tests.
package rxtest
