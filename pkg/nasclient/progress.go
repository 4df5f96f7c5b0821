package nasclient

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	progressBarWidth     = 32
	progressRenderPeriod = 120 * time.Millisecond
)

// progressBar рисует ASCII-индикатор передачи в out. Все методы безопасны для nil.
type progressBar struct {
	out           io.Writer
	prefix        string
	total         int64
	current       int64
	started       time.Time
	lastRender    time.Time
	lastLineWidth int
	finished      bool
	mu            sync.Mutex
}

func newProgressBar(out io.Writer, prefix string, total int64) *progressBar {
	return &progressBar{
		out:     out,
		prefix:  prefix,
		total:   total,
		started: time.Now(),
	}
}

func (p *progressBar) AddBytes(n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.mu.Lock()
	if p.finished {
		p.mu.Unlock()
		return
	}
	p.current += n
	p.mu.Unlock()
	p.render(false, "")
}

func (p *progressBar) render(force bool, suffix string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.finished && !force {
		p.mu.Unlock()
		return
	}
	now := time.Now()
	if !force && now.Sub(p.lastRender) < progressRenderPeriod {
		p.mu.Unlock()
		return
	}

	line := p.lineLocked(now)
	prevWidth := p.lastLineWidth
	p.lastLineWidth = len(line) + len(suffix)
	p.lastRender = now
	p.mu.Unlock()

	fmt.Fprintf(p.out, "\r%s%s%s", line, suffix, pad(prevWidth, len(line)+len(suffix)))
}

// lineLocked собирает строку индикатора; вызывается под mu.
func (p *progressBar) lineLocked(now time.Time) string {
	var b strings.Builder
	b.Grow(len(p.prefix) + 80)
	b.WriteString(p.prefix)
	b.WriteByte(' ')

	if p.total > 0 {
		ratio := min(float64(p.current)/float64(p.total), 1)
		filled := min(int(ratio*progressBarWidth+0.5), progressBarWidth)
		b.WriteByte('[')
		b.WriteString(strings.Repeat("=", filled))
		b.WriteString(strings.Repeat(" ", progressBarWidth-filled))
		fmt.Fprintf(&b, "] %3d%% %s/%s", int(ratio*100+0.5), humanBytes(p.current), humanBytes(p.total))
	} else {
		b.WriteString(humanBytes(p.current))
		b.WriteString(" transferred")
	}

	if elapsed := now.Sub(p.started).Seconds(); elapsed > 0 && p.current > 0 {
		fmt.Fprintf(&b, " (%s/s)", humanBytes(int64(float64(p.current)/elapsed)))
	}

	return b.String()
}

func (p *progressBar) Finish() {
	p.complete(nil)
}

func (p *progressBar) Fail(err error) {
	if err == nil {
		err = errors.New("failed")
	}
	p.complete(err)
}

func (p *progressBar) complete(err error) {
	if p == nil {
		return
	}

	p.mu.Lock()
	if p.finished {
		p.mu.Unlock()
		return
	}
	p.finished = true
	line := p.lineLocked(time.Now())
	prevWidth := p.lastLineWidth
	p.lastLineWidth = len(line)
	p.mu.Unlock()

	suffix := " ✓"
	if err != nil {
		suffix = fmt.Sprintf(" ✗ %v", err)
	}

	fmt.Fprintf(p.out, "\r%s%s%s\n", line, suffix, pad(prevWidth, len(line)+len(suffix)))
}

// pad затирает хвост предыдущей, более длинной строки.
func pad(prev, cur int) string {
	if prev > cur {
		return strings.Repeat(" ", prev-cur)
	}
	return ""
}

type progressWriter struct {
	bar *progressBar
}

func (w progressWriter) Write(p []byte) (int, error) {
	w.bar.AddBytes(int64(len(p)))
	return len(p), nil
}

// progressReadCloser двигает индикатор по мере чтения тела ответа.
type progressReadCloser struct {
	inner io.ReadCloser
	bar   *progressBar
	once  sync.Once
}

func newProgressReadCloser(inner io.ReadCloser, bar *progressBar) io.ReadCloser {
	if bar == nil || inner == nil {
		return inner
	}
	return &progressReadCloser{inner: inner, bar: bar}
}

func (p *progressReadCloser) Read(b []byte) (int, error) {
	n, err := p.inner.Read(b)
	p.bar.AddBytes(int64(n))
	if err != nil {
		p.finish(err)
	}
	return n, err
}

func (p *progressReadCloser) Close() error {
	err := p.inner.Close()
	p.finish(err)
	return err
}

func (p *progressReadCloser) finish(err error) {
	p.once.Do(func() {
		if err != nil && !errors.Is(err, io.EOF) {
			p.bar.Fail(err)
			return
		}
		p.bar.Finish()
	})
}

func humanBytes(v int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	value := float64(v)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", v, units[unit])
	}
	return fmt.Sprintf("%.1f %s", value, units[unit])
}
