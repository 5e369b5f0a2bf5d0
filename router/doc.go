// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP route table.

Routes use Go 1.22+ method and path-value patterns on the standard mux.
The router also assembles the core: the store gateway, the voting engine,
and the identity provider (backed by the store's session table), then
hands them to the handlers.
*/
package router
