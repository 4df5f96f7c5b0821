package models

// SavedFile возвращается после успешной загрузки и содержит итоговый путь и размер.
type SavedFile struct {
	Path string
	Name string
	Size int64
}
