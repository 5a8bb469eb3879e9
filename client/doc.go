// Package client provides the authenticated JSON HTTP core for the
// back-office API: base-URL handling, request identification, response
// decoding and the error taxonomy every higher layer relies on.
//
// Session handling lives in the nested auth packages: auth/store holds the
// access token, auth/transport attaches it and refreshes it on 401.
package client
