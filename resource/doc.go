// Package resource provides the generic typed client for one REST-addressable
// collection: list/get/create/update/delete/search plus bulk, export and
// import, all sharing the paginated wire shape defined by Page.
package resource
