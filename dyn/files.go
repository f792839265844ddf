package dyn

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	phon "github.com/rmera/gophon"
	"golang.org/x/sync/errgroup"
)

//zstdFile makes a *zstd.Decoder an io.ReadCloser, its Close method returns nothing.
type zstdFile struct {
	*zstd.Decoder
	f *os.File
}

//Close closes the decoder and the file. It can not be used after this call
func (z *zstdFile) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

type gzFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzFile) Close() error {
	err := g.Reader.Close()
	if err2 := g.f.Close(); err == nil {
		err = err2
	}
	return err
}

// Open opens the file name for reading. Files ending in .gz are decompressed with gzip,
// files ending in .zst or .zstd with zstd. Anything else is read as it is.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".gz":
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, newFormatError("Unable to read gzip stream", 0, err, "Open")
		}
		return &gzFile{r, f}, nil
	case ".zst", ".zstd":
		r, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, newFormatError("Unable to read zstd stream", 0, err, "Open")
		}
		return &zstdFile{r, f}, nil
	case ".bz2", ".xz", ".lzw", ".z":
		log.Printf("Compression format %s not supported. %s will be read as a plain dyn file", ext, name)
	}
	return f, nil
}

// ReadFile reads the whole dyn file name. The file can be compressed (see Open).
func ReadFile(name string, o *Options) (*phon.Record, error) {
	f, err := Open(name)
	if err != nil {
		return nil, setFileName(errDecorate(err, "ReadFile"), name)
	}
	defer f.Close()
	opts := o.fill()
	if opts.Name == "" {
		opts.Name = name
	}
	rec, err := Read(f, opts)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	return rec, nil
}

// ReadFiles reads the given files concurrently, using at most o.Workers goroutines.
// The records are returned in the same order as names. The first error stops the
// reading of the files that haven't been started yet, and is returned.
func ReadFiles(ctx context.Context, names []string, o *Options) ([]*phon.Record, error) {
	opts := o.fill()
	ret := make([]*phon.Record, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fo := *opts
			fo.Name = name
			rec, err := ReadFile(name, &fo)
			if err != nil {
				return err
			}
			ret[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}
