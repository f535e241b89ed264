// Package reporter provides implementations of judger.Reporter for the
// hosting environments of the grader.
//
// GitHub writes workflow commands to the log and outputs to $GITHUB_OUTPUT.
// Console logs through zap. Recorder keeps everything in memory and is used
// by the HTTP server to build the response.
package reporter
