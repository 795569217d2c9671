// Package mapio reads and writes room.MapData and walk inputs as JSON.
package mapio
