// Package basecamp provides a client for the Basecamp 4 API.
//
// This package wraps the HTTP API at 3.basecampapi.com and provides
// functionality for:
//   - Listing and retrieving projects and their dock tools
//   - Managing to-do lists and to-dos (list, get, create, complete)
//   - Reading and posting message board messages
//   - Reading and posting Campfire chat lines
//   - Working with card tables (columns, cards, moves)
//   - Listing people and looking up the authenticated user
//   - Searching recordings across projects
//
// Every request carries the account-scoped base URL and the User-Agent
// identification that Basecamp requires. Authentication happens through an
// oauth2.TokenSource supplied at construction, so the client never touches
// credentials directly.
//
// # Dock Resolution
//
// Basecamp exposes per-project tools (to-do set, message board, chat, card
// table) through the project dock. Operations that need a tool resolve it
// from the dock first and fail with a descriptive error when the tool is
// disabled for the project.
//
// # Pagination
//
// List endpoints follow the Link header with rel="next" as described in the
// Basecamp API documentation, up to a configurable page cap. The cap keeps a
// runaway account from turning one tool call into hundreds of requests.
//
// # Example Usage
//
//	client, err := basecamp.NewClient(ctx, accountID, userAgent, tokenSource)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	projects, err := client.ListProjects(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	todo, err := client.CreateTodo(ctx, projectID, listID, basecamp.TodoInput{
//	    Content: "Review launch checklist",
//	    DueOn:   "2026-09-01",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
package basecamp
