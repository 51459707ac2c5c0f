package loader

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/valerio/go-tilengine/tilengine/errcode"
)

// Resource pack layout, all integers little endian:
//
//	magic   [8]byte  "ResPack\x00"
//	count   uint32
//	flags   uint32   bit 0 set when payloads are encrypted
//	entries [count]{key uint64, offset uint32, size uint32, stored uint32}
//	payloads
//
// key is the xxhash64 of the normalized file name. Encrypted payloads are
// AES-128-CBC with a 16 byte IV prefix and PKCS#7 padding, keyed with the
// MD5 digest of the passphrase.
var packMagic = [8]byte{'R', 'e', 's', 'P', 'a', 'c', 'k', 0}

const (
	packFlagEncrypted = 1 << 0
	packHeaderSize    = 16
	packEntrySize     = 20
)

var (
	ErrPackMagic = errors.New("not a resource pack")
	ErrPackKey   = errors.New("wrong resource pack key")
	ErrPackIndex = errors.New("resource pack index out of bounds")
)

type packEntry struct {
	offset uint32
	size   uint32
	stored uint32
}

// Pack is an open resource pack.
type Pack struct {
	r       io.ReaderAt
	closer  io.Closer
	block   cipher.Block
	entries map[uint64]packEntry
}

// NormalizeName returns the canonical form of a file name inside a pack.
func NormalizeName(name string) string {
	name = path.Clean(filepath.ToSlash(name))
	name = strings.TrimPrefix(name, "/")
	return strings.ToLower(name)
}

func packKey(name string) uint64 {
	return xxhash.Sum64String(NormalizeName(name))
}

func packCipher(key string) (cipher.Block, error) {
	if key == "" {
		return nil, nil
	}
	sum := md5.Sum([]byte(key))
	return aes.NewCipher(sum[:])
}

// OpenPack opens the resource pack in file. key is the passphrase used
// when the pack was built; it is ignored for unencrypted packs.
func OpenPack(file, key string) (*Pack, error) {
	f, err := os.Open(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errcode.Wrap("OpenResourcePack", errcode.FileNotFound, err)
		}
		return nil, errcode.Wrap("OpenResourcePack", errcode.WrongFormat, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errcode.Wrap("OpenResourcePack", errcode.WrongFormat, err)
	}
	p, err := ReadPack(f, info.Size(), key)
	if err != nil {
		f.Close()
		return nil, err
	}
	p.closer = f
	return p, nil
}

// ReadPack reads the pack index from r, which holds size bytes. Payloads
// are read lazily; the index and every payload must fit in size.
func ReadPack(r io.ReaderAt, size int64, key string) (*Pack, error) {
	var header [packHeaderSize]byte
	if _, err := r.ReadAt(header[:], 0); err != nil {
		return nil, formatError("OpenResourcePack", err)
	}
	if !bytes.Equal(header[:8], packMagic[:]) {
		return nil, formatError("OpenResourcePack", ErrPackMagic)
	}
	count := binary.LittleEndian.Uint32(header[8:])
	flags := binary.LittleEndian.Uint32(header[12:])

	if int64(count)*packEntrySize > size-packHeaderSize {
		return nil, formatError("OpenResourcePack", ErrPackIndex)
	}
	table := make([]byte, int(count)*packEntrySize)
	if _, err := r.ReadAt(table, packHeaderSize); err != nil {
		return nil, formatError("OpenResourcePack", fmt.Errorf("reading index: %w", err))
	}

	p := &Pack{r: r, entries: make(map[uint64]packEntry, count)}
	for i := 0; i < int(count); i++ {
		e := table[i*packEntrySize:]
		entry := packEntry{
			offset: binary.LittleEndian.Uint32(e[8:]),
			size:   binary.LittleEndian.Uint32(e[12:]),
			stored: binary.LittleEndian.Uint32(e[16:]),
		}
		if int64(entry.offset)+int64(entry.stored) > size {
			return nil, formatError("OpenResourcePack", ErrPackIndex)
		}
		p.entries[binary.LittleEndian.Uint64(e)] = entry
	}

	if flags&packFlagEncrypted != 0 {
		if key == "" {
			return nil, formatError("OpenResourcePack", ErrPackKey)
		}
		block, err := packCipher(key)
		if err != nil {
			return nil, formatError("OpenResourcePack", err)
		}
		p.block = block
	}
	return p, nil
}

// Len returns the number of files in the pack.
func (p *Pack) Len() int {
	return len(p.entries)
}

// Contains reports whether the pack holds name.
func (p *Pack) Contains(name string) bool {
	_, ok := p.entries[packKey(name)]
	return ok
}

// ReadFile returns the decoded contents of name.
func (p *Pack) ReadFile(name string) ([]byte, error) {
	e, ok := p.entries[packKey(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if e.stored == 0 {
		return []byte{}, nil
	}
	stored := make([]byte, e.stored)
	if _, err := p.r.ReadAt(stored, int64(e.offset)); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if p.block == nil {
		return stored, nil
	}

	bs := p.block.BlockSize()
	if len(stored) < 2*bs || len(stored)%bs != 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrPackKey)
	}
	plain := make([]byte, len(stored)-bs)
	cipher.NewCBCDecrypter(p.block, stored[:bs]).CryptBlocks(plain, stored[bs:])

	pad := int(plain[len(plain)-1])
	if pad == 0 || pad > bs || len(plain)-pad != int(e.size) ||
		!bytes.Equal(plain[e.size:], bytes.Repeat([]byte{byte(pad)}, pad)) {
		return nil, fmt.Errorf("%s: %w", name, ErrPackKey)
	}
	return plain[:e.size], nil
}

// Close releases the underlying file.
func (p *Pack) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// PackWriter collects files and writes them as a resource pack.
type PackWriter struct {
	key   string
	names []string
	files map[string][]byte
}

// NewPackWriter creates a writer. An empty key builds an unencrypted pack.
func NewPackWriter(key string) *PackWriter {
	return &PackWriter{key: key, files: make(map[string][]byte)}
}

// Add queues a file under name. Adding the same name twice replaces it.
func (w *PackWriter) Add(name string, data []byte) {
	n := NormalizeName(name)
	if _, ok := w.files[n]; !ok {
		w.names = append(w.names, n)
	}
	w.files[n] = data
}

// AddDir queues every regular file under dir, named relative to it.
func (w *PackWriter) AddDir(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		w.Add(rel, data)
		return nil
	})
}

// Names returns the normalized names queued so far.
func (w *PackWriter) Names() []string {
	names := append([]string(nil), w.names...)
	sort.Strings(names)
	return names
}

// WriteTo writes the pack.
func (w *PackWriter) WriteTo(out io.Writer) (int64, error) {
	block, err := packCipher(w.key)
	if err != nil {
		return 0, err
	}

	names := w.Names()
	payloads := make([][]byte, len(names))
	for i, name := range names {
		payloads[i] = w.files[name]
		if block != nil {
			if payloads[i], err = encrypt(block, payloads[i]); err != nil {
				return 0, err
			}
		}
	}

	var buf bytes.Buffer
	buf.Write(packMagic[:])
	var flags uint32
	if block != nil {
		flags |= packFlagEncrypted
	}
	binary.Write(&buf, binary.LittleEndian, uint32(len(names)))
	binary.Write(&buf, binary.LittleEndian, flags)

	offset := packHeaderSize + len(names)*packEntrySize
	for i, name := range names {
		binary.Write(&buf, binary.LittleEndian, packKey(name))
		binary.Write(&buf, binary.LittleEndian, uint32(offset))
		binary.Write(&buf, binary.LittleEndian, uint32(len(w.files[name])))
		binary.Write(&buf, binary.LittleEndian, uint32(len(payloads[i])))
		offset += len(payloads[i])
	}
	for _, p := range payloads {
		buf.Write(p)
	}
	return buf.WriteTo(out)
}

func encrypt(block cipher.Block, data []byte) ([]byte, error) {
	bs := block.BlockSize()
	pad := bs - len(data)%bs
	plain := make([]byte, len(data)+pad)
	copy(plain, data)
	for i := len(data); i < len(plain); i++ {
		plain[i] = byte(pad)
	}

	out := make([]byte, bs+len(plain))
	if _, err := io.ReadFull(rand.Reader, out[:bs]); err != nil {
		return nil, err
	}
	cipher.NewCBCEncrypter(block, out[:bs]).CryptBlocks(out[bs:], plain)
	return out, nil
}
