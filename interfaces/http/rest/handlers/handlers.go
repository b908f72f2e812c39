// Package handlers contains the HTTP request handlers for the REST API.
package handlers

// Request bodies above this size are rejected before decoding.
const maxBodyBytes = 1 << 20
