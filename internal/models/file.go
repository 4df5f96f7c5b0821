package models

// Entry — одна запись листинга директории. Size равен nil для директорий.
type Entry struct {
	Name  string `json:"name"`
	IsDir bool   `json:"is_dir"`
	Size  *int64 `json:"size"`
}

// FileInfo описывает файл, готовый к отдаче целиком.
type FileInfo struct {
	Path string
	Name string
	Size int64
}

// ByteRange — окно байтов [Start, End] внутри ресурса размером Size.
type ByteRange struct {
	Start int64
	End   int64
	Size  int64
}

// Length возвращает число байт в окне.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}
