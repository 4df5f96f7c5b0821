// Package resthttp реализует HTTP-интерфейс файлового хранилища поверх filesvc.
// Основные эндпоинты:
//   - GET /files/{path} — листинг директории (JSON).
//   - GET /files/download/{path} — файл целиком как вложение.
//   - GET|HEAD /files/stream/{path} — отдача с поддержкой Range (206 Partial Content).
//   - POST /files/upload/{path} — загрузка (multipart поле "file" или сырое тело + X-File-Name).
//   - POST /files/mkdir/{path}?name= — создание директории.
//   - DELETE /files/delete/{path} — удаление файла.
//   - DELETE /files/delete-dir/{path}?recursive=1 — удаление директории.
//   - POST /files/rename/{path}?new_name= — переименование в пределах родителя.
//   - GET /health, POST /admin/gc, GET /metrics — служебные.
package resthttp
