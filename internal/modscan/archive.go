// ABOUTME: Reads mod archives (.jar zip files) and their nested jar-in-jar mods
// ABOUTME: Uses klauspost/compress zip for both on-disk and in-memory archives

package modscan

import (
	"bytes"
	"fmt"
	"io"
	"path"

	"github.com/klauspost/compress/zip"
)

const (
	fabricManifestPath = "fabric.mod.json"
	quiltManifestPath  = "quilt.mod.json"
	forgeManifestPath  = "META-INF/mods.toml"
	neoManifestPath    = "META-INF/neoforge.mods.toml"
	jarManifestPath    = "META-INF/MANIFEST.MF"

	// maxNestingDepth bounds jar-in-jar recursion.
	maxNestingDepth = 4
	// maxEntrySize bounds how much of a single archive entry is read.
	maxEntrySize = 64 << 20
)

// readArchive returns the descriptors of every mod in the jar at path,
// including mods nested inside it. source labels the records' Source field.
func readArchive(path, source string) ([]*descriptor, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ArchiveError{Path: path, Err: err}
	}
	defer rc.Close()

	descs, err := readZip(&rc.Reader, source, 0)
	if err != nil {
		return nil, &ArchiveError{Path: path, Err: err}
	}
	return descs, nil
}

func readZip(zr *zip.Reader, source string, depth int) ([]*descriptor, error) {
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	var descs []*descriptor
	switch {
	case files[quiltManifestPath] != nil:
		data, err := readEntry(files[quiltManifestPath])
		if err != nil {
			return nil, err
		}
		d, err := parseQuilt(data)
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	case files[fabricManifestPath] != nil:
		data, err := readEntry(files[fabricManifestPath])
		if err != nil {
			return nil, err
		}
		d, err := parseFabric(data)
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	case files[forgeManifestPath] != nil || files[neoManifestPath] != nil:
		f := files[neoManifestPath]
		if f == nil {
			f = files[forgeManifestPath]
		}
		data, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		var jarVersion string
		if mf := files[jarManifestPath]; mf != nil {
			if mfData, err := readEntry(mf); err == nil {
				jarVersion = manifestVersion(mfData)
			}
		}
		forge, err := parseForge(data, jarVersion)
		if err != nil {
			return nil, err
		}
		descs = append(descs, forge...)
	default:
		return nil, fmt.Errorf("no mod manifest found")
	}

	for _, d := range descs {
		d.record.Source = source
		d.normalize()
	}

	if depth >= maxNestingDepth {
		return descs, nil
	}

	var nested []*descriptor
	for _, d := range descs {
		for _, name := range d.nestedJars {
			f := files[path.Clean(name)]
			if f == nil {
				continue
			}
			inner, err := readNested(f, source+"!/"+f.Name, depth+1)
			if err != nil {
				// A broken nested jar does not hide the mod that ships it.
				continue
			}
			nested = append(nested, inner...)
		}
	}
	return append(descs, nested...), nil
}

func readNested(f *zip.File, source string, depth int) ([]*descriptor, error) {
	data, err := readEntry(f)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return readZip(zr, source, depth)
}

func readEntry(f *zip.File) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, maxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	if len(data) > maxEntrySize {
		return nil, fmt.Errorf("%s exceeds %d bytes", f.Name, maxEntrySize)
	}
	return data, nil
}
