// Package transport gives the client façade one vocabulary for talking to a
// remote harness service regardless of wire protocol: unary requests,
// server-sent-event streams, binary download and multipart upload over REST,
// plus a narrower bidirectional vocabulary over WebSocket. Both realizations
// share one error taxonomy (connection, authentication, rate-limit, generic
// transport failure).
package transport
