package tree

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"

	"github.com/banaszakw/dir-maker/internal/model"
)

// Permissions for created entries, before the process umask is applied.
const (
	// dirPerm lets the owner write and everyone list the folder.
	dirPerm os.FileMode = 0o755

	// filePerm is used for the empty placeholders.
	filePerm os.FileMode = 0o644
)

// Builder creates template entries below a base directory.
//
// The builder holds no state besides the filesystem, so one instance can
// serve any number of targets and templates.
type Builder struct {
	// fs receives every MkdirAll and OpenFile call.
	fs billy.Filesystem
}

// NewBuilder returns a Builder operating on fs. Paths handed to the
// builder are used as given, so fs must be rooted where base paths are
// meaningful (osfs.New("/") for absolute OS paths).
func NewBuilder(fs billy.Filesystem) *Builder {
	return &Builder{fs: fs}
}

// EntryPath returns the location of entry inside the target folder under
// base. A nil entry yields the target folder itself. The builder and the
// dry-run plan both resolve paths through this function.
func EntryPath(base, target string, entry model.Entry) string {
	parts := make([]string, 0, len(entry)+2)
	parts = append(parts, base, target)
	parts = append(parts, entry...)
	return filepath.Join(parts...)
}

// CreateDirectories ensures every entry of tpl exists as a directory under
// base/target, creating missing intermediate directories. Calling it again
// with the same arguments is a no-op.
func (b *Builder) CreateDirectories(base, target string, tpl model.Template) error {
	for _, entry := range tpl.Entries {
		// MkdirAll succeeds when the directory already exists, which is
		// what makes repeated runs safe.
		if err := b.fs.MkdirAll(EntryPath(base, target, entry), dirPerm); err != nil {
			return err
		}
	}
	return nil
}

// CreateFiles creates an empty file for every entry of tpl that does not
// exist yet. Whatever already exists at an entry's path is left untouched,
// since placeholders are meant to be edited or replaced by the user.
func (b *Builder) CreateFiles(base, target string, tpl model.Template) error {
	for _, entry := range tpl.Entries {
		p := EntryPath(base, target, entry)

		// Lstat rather than Stat: a dangling symlink at the path still
		// counts as "something exists" and is left alone.
		_, err := b.fs.Lstat(p)
		if err == nil {
			continue
		}
		if !os.IsNotExist(err) {
			return err
		}

		// O_EXCL keeps the never-overwrite guarantee even if the path
		// appeared between Lstat and OpenFile.
		f, err := b.fs.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// Apply dispatches tpl to CreateDirectories or CreateFiles by its kind.
// A template of unknown kind is rejected before anything is created.
func (b *Builder) Apply(base, target string, tpl model.Template) error {
	if !tpl.Kind.IsValid() {
		return fmt.Errorf("template %q: unsupported kind %q", tpl.Name, tpl.Kind)
	}

	if tpl.Kind == model.KindFile {
		return b.CreateFiles(base, target, tpl)
	}
	return b.CreateDirectories(base, target, tpl)
}
