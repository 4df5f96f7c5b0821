// Package nasproto описывает HTTP-протокол файлового API: пути эндпоинтов и заголовки.
package nasproto

// Пути эндпоинтов относительно базового URL.
const (
	PathList      = "/files/"
	PathDownload  = "/files/download/"
	PathStream    = "/files/stream/"
	PathUpload    = "/files/upload/"
	PathMkdir     = "/files/mkdir/"
	PathDelete    = "/files/delete/"
	PathDeleteDir = "/files/delete-dir/"
	PathRename    = "/files/rename/"
	PathHealth    = "/health"
	PathGC        = "/admin/gc"
	PathMetrics   = "/metrics"
)

// Заголовки и параметры запроса.
const (
	HeaderFileName     = "X-File-Name"
	HeaderRange        = "Range"
	HeaderContentRange = "Content-Range"
	HeaderAcceptRanges = "Accept-Ranges"

	FormFieldFile   = "file"
	QueryFilename   = "filename"
	QueryName       = "name"
	QueryNewName    = "new_name"
	QueryRecursive  = "recursive"
	AcceptRangesVal = "bytes"
)
