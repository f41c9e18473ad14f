// Package constants holds service endpoints and header names shared by
// the client implementations.
package constants

// Default service locations. The admin base URL keeps a path template
// placeholder that is substituted once at client construction.
const (
	DefaultUserBaseURL          = "https://pathways.example.com/"
	DefaultAdminBaseURLTemplate = "https://pathways.example.com/v1/apps/{{app_ubiquity_token}}/"
)

// Header names.
const (
	HeaderAuthorization = "Authorization"
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"
)

// DefaultUserAgent identifies this client library.
const DefaultUserAgent = "pathways-client-go"
