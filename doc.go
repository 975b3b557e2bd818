// Ritual is a one-time setup tool for multi-agent pull-request reviews. It
// scaffolds a .ritual/ directory with agent configuration and prompt content,
// and generates one GitHub Actions workflow per enabled review agent.
//
// The binary lives at cmd/ritual; all functionality is under internal/.
package ritual
