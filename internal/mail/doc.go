// Package mail relays validated contact submissions through an SMTP server.
//
// A Relay is built once from the process configuration and opens one short
// SMTP session per submission: EHLO, mandatory STARTTLS, optional AUTH PLAIN,
// a single recipient, DATA, QUIT. Send never returns an error; every failure
// is folded into an Outcome so the HTTP layer can collapse it into the
// delivered flag while logs and traces keep the cause.
package mail
