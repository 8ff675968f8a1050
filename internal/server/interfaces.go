package server

// Server is the lifecycle contract of the transport server.
type Server interface {
	// RunServer starts serving and blocks until a stop signal arrives and
	// shutdown has finished.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}
