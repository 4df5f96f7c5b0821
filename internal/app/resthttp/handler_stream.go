package resthttp

import (
	"net/http"
	"strconv"

	"github.com/sir_venger/mini_nas/internal/logger"
	"github.com/sir_venger/mini_nas/internal/metrics"
	"github.com/sir_venger/mini_nas/pkg/httperrors"
	"github.com/sir_venger/mini_nas/pkg/nasproto"
)

// streamFile отдаёт файл или его окно по заголовку Range. Чтение идёт чанками,
// разрыв соединения отменяет r.Context() и останавливает цикл.
func (s *Server) streamFile(w http.ResponseWriter, r *http.Request) {
	st, err := s.FilesService.Stream(r.Context(), pathParam(r), r.Header.Get(nasproto.HeaderRange))
	if err != nil {
		w.Header().Set(nasproto.HeaderAcceptRanges, nasproto.AcceptRangesVal)
		httperrors.Write(w, err)
		return
	}
	defer st.Close()

	h := w.Header()
	h.Set(nasproto.HeaderAcceptRanges, nasproto.AcceptRangesVal)
	h.Set("Content-Type", st.ContentType)
	h.Set("Content-Length", strconv.FormatInt(st.Range.Length(), 10))

	status := http.StatusOK
	if st.Partial {
		status = http.StatusPartialContent
		h.Set(nasproto.HeaderContentRange, contentRange(st.Range.Start, st.Range.End, st.Range.Size))
	}
	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		return
	}

	n, err := st.CopyTo(r.Context(), w)
	s.Metrics.AddBytes(metrics.DirectionOut, n)
	if err != nil {
		logger.Debug("stream %s stopped after %d/%d bytes: %v", st.Name, n, st.Range.Length(), err)
	}
}

func contentRange(start, end, size int64) string {
	return "bytes " + strconv.FormatInt(start, 10) + "-" + strconv.FormatInt(end, 10) + "/" + strconv.FormatInt(size, 10)
}
