package textures

import (
	"context"
	"fmt"
	"image"
	_ "image/png" // register PNG decoder
	"io/fs"
	"path"
	"runtime"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sheet is a numbered frame sequence: Base000.. read from Dir/000.png..
type Sheet struct {
	Base   string
	Dir    string
	Frames int
}

// TextureName builds "<base><3-digit index>", e.g. CoinsGold007.
func TextureName(base string, i int) string {
	return fmt.Sprintf("%s%03d", base, i)
}

// FramePath is the file holding frame i of a sheet.
func FramePath(dir string, i int) string {
	return path.Join(dir, fmt.Sprintf("%03d.png", i))
}

// Request names one texture and where to read it from.
type Request struct {
	Name string
	Path string
}

// SheetRequests expands sheets into per-frame requests, in order.
func SheetRequests(sheets ...Sheet) []Request {
	var out []Request
	for _, s := range sheets {
		for i := 0; i < s.Frames; i++ {
			out = append(out, Request{Name: TextureName(s.Base, i), Path: FramePath(s.Dir, i)})
		}
	}
	return out
}

// Decode reads and decodes one image file.
func Decode(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// Result is what a finished load produced. Err combines every per-file
// failure; Images holds everything that did decode.
type Result struct {
	Images map[string]image.Image
	Order  []string // request order of the decoded names
	Failed []string
	Err    error
}

// Install uploads the decoded images into c on the calling goroutine and
// returns how many were installed.
func (r *Result) Install(c *Cache) int {
	for _, name := range r.Order {
		c.Put(name, r.Images[name])
	}
	return len(r.Order)
}

// Errors splits Err back into the individual failures.
func (r *Result) Errors() []error { return multierr.Errors(r.Err) }

// Pending is an in-flight load.
type Pending struct {
	done chan struct{}
	res  *Result
}

// Done is closed once the result is available.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Poll returns the result without blocking; ok is false while loading.
func (p *Pending) Poll() (res *Result, ok bool) {
	select {
	case <-p.done:
		return p.res, true
	default:
		return nil, false
	}
}

// Wait blocks until the load finishes or ctx ends. The returned error is the
// context's, or the combined load error.
func (p *Pending) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-p.done:
		return p.res, p.res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type Loader struct {
	log   *zap.Logger
	limit int
}

// NewLoader decodes up to limit files at once; limit <= 0 means GOMAXPROCS.
func NewLoader(log *zap.Logger, limit int) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	return &Loader{log: log, limit: limit}
}

// Load starts reading every request from fsys in the background. A file that
// fails does not stop the others; all failures end up in Result.Err.
func (l *Loader) Load(ctx context.Context, fsys fs.FS, reqs []Request) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.res = l.run(ctx, fsys, reqs)
	}()
	return p
}

func (l *Loader) run(ctx context.Context, fsys fs.FS, reqs []Request) *Result {
	imgs := make([]image.Image, len(reqs))
	errs := make([]error, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit)
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = fmt.Errorf("%s: %w", req.Name, err)
				return err
			}
			img, err := Decode(fsys, req.Path)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", req.Name, err)
				return nil
			}
			imgs[i] = img
			return nil
		})
	}
	// Decode failures return nil so one bad file does not cancel the rest;
	// only cancellation of ctx reaches Wait.
	if err := g.Wait(); err != nil {
		l.log.Debug("texture load cancelled", zap.Error(err))
	}

	res := &Result{Images: make(map[string]image.Image, len(reqs))}
	for i, req := range reqs {
		if errs[i] != nil {
			res.Failed = append(res.Failed, req.Name)
			res.Err = multierr.Append(res.Err, errs[i])
			continue
		}
		if _, dup := res.Images[req.Name]; !dup {
			res.Order = append(res.Order, req.Name)
		}
		res.Images[req.Name] = imgs[i]
	}
	l.log.Debug("textures decoded",
		zap.Int("requested", len(reqs)),
		zap.Int("decoded", len(res.Order)),
		zap.Int("failed", len(res.Failed)))
	return res
}
