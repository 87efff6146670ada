// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

/*
Package supervisor runs the long-lived Coursegraph services under a suture v4
supervisor tree.

	RootSupervisor ("coursegraph")
	├── DataSupervisor ("data-layer")
	│   ├── SessionCleanupService
	│   ├── SchemaService (exits once the constraints exist)
	│   └── audit logger
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer restarts its children independently, so a failing session sweep
never takes the HTTP listener down with it. Supervisor events are logged
through sutureslog on top of the zerolog-backed slog adapter.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewSessionCleanupService(store, 10*time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
