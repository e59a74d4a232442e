package linkwriter

// Symlink writes plain symbolic links. Description and working directory
// have no place in a symlink and are dropped.
type Symlink struct {
	fs FS
}

func NewSymlink(fs FS) *Symlink {
	return &Symlink{fs: fs}
}

func (s *Symlink) Extension() string {
	return "link"
}

func (s *Symlink) Write(path string, link Link) error {
	if _, err := s.fs.Lstat(path); err == nil {
		if err := s.fs.Remove(path); err != nil {
			return err
		}
	}
	return s.fs.Symlink(link.Target, path)
}
