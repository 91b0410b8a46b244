// Package pushtest provides a fake push API receiver.
//
// A [Receiver] accepts POST /v1/send/{widget_key} requests the way the real
// service does, records every accepted envelope and answers with the same
// {"success": ...} documents. It is used by the geckopush tests, the example
// program and the standalone mock server.
package pushtest
