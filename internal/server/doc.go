// Package server exposes dungeon generation over HTTP.
//
// # Routes
//
//	GET    /healthz                     liveness and build info
//	GET    /v1/dungeons                 generate from query parameters and return one artifact
//	POST   /v1/dungeons                 generate from a JSON body and save the snapshot
//	GET    /v1/dungeons/{id}            a saved snapshot, as JSON or any render format
//	GET    /v1/dungeons/{id}/graph      the saved snapshot's room graph (dot, svg, png)
//	DELETE /v1/dungeons/{id}            remove a saved snapshot
//	GET    /v1/saved                    summaries of saved snapshots, newest first
//
// Query parameters for GET /v1/dungeons mirror the generate command: seed,
// height, width, density, retries, room_min, room_max, l_shape, furnish,
// no_entrances, plus format, cell_size, glyphs, outlines and labels.
//
// # Errors
//
// Failures reply with {"error": {"code": ..., "message": ...}}. Codes come
// from pkg/errors: INVALID_* map to 400, NOT_FOUND to 404 and everything
// else to 500, whose message is not exposed.
//
// Every response carries an X-Request-ID header. Requests are logged with
// charmbracelet/log and reported to [observability.ServerHooks].
package server
