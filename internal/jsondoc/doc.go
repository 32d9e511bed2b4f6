// Package jsondoc exposes JSON documents as bindable value holders.
//
// A Document stores raw JSON and addresses values with gjson paths such as
// "customer.address.city" or "items.0.name". Writes go through sjson and
// notify observers of the written path, its ancestors and any observed path
// below it. Cursors address a subtree and make documents walkable by the
// binding engine's dotted paths:
//
//	doc, _ := jsondoc.Parse(`{"customer":{"name":"Ada"}}`)
//	engine.Bidirectional(doc, "customer.name", field, "text")
//
// Numbers are returned as int when integral and float64 otherwise; objects
// and arrays are returned as map[string]any and []any.
package jsondoc
