// Package logger provides structured logging for appkit built on zerolog.
//
// Capability services obtain a component-tagged logger via WithComponent so
// log lines can be attributed to the storage, network, alerts, etc. services
// without threading a logger through every call.
package logger
