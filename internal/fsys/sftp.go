package fsys

import (
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Compile-time interface check.
var _ FS = (*SFTP)(nil)

// SFTP scans a remote filesystem. The working directory is tracked locally
// and relative paths are resolved against it before every request.
type SFTP struct {
	client *sftp.Client
	ssh    *ssh.Client
	cwd    string
	mu     sync.Mutex
}

// NewSFTP opens an SFTP session over sshClient. The caller must call Close,
// which also closes sshClient.
func NewSFTP(sshClient *ssh.Client) (*SFTP, error) {
	client, err := sftp.NewClient(sshClient)
	if err != nil {
		return nil, fmt.Errorf("sftp client: %w", err)
	}
	return newSFTPFromClient(client, sshClient)
}

func newSFTPFromClient(client *sftp.Client, sshClient *ssh.Client) (*SFTP, error) {
	wd, err := client.Getwd()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("sftp getwd: %w", err)
	}
	return &SFTP{client: client, ssh: sshClient, cwd: wd}, nil
}

func (s *SFTP) ReadDir(dir string) ([]string, error) {
	infos, err := s.client.ReadDir(s.abs(dir))
	if err != nil {
		return nil, fmt.Errorf("readdir %s: %w", dir, err)
	}
	names := make([]string, len(infos))
	for i, fi := range infos {
		names[i] = fi.Name()
	}
	return names, nil
}

func (s *SFTP) Stat(name string) (Info, error) {
	fi, err := s.client.Stat(s.abs(name))
	if err != nil {
		return Info{}, err
	}
	return Info{
		Name:    path.Base(name),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
		Perm:    fi.Mode().Perm(),
		IsDir:   fi.IsDir(),
	}, nil
}

func (s *SFTP) Chmod(name string, perm os.FileMode) error {
	return s.client.Chmod(s.abs(name), perm.Perm())
}

func (s *SFTP) MkdirAll(dir string) error {
	return s.client.MkdirAll(s.abs(dir))
}

func (s *SFTP) Getwd() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cwd, nil
}

func (s *SFTP) Chdir(dir string) error {
	target := s.abs(dir)
	fi, err := s.client.Stat(target)
	if err != nil {
		return &os.PathError{Op: "chdir", Path: dir, Err: err}
	}
	if !fi.IsDir() {
		return &os.PathError{Op: "chdir", Path: dir, Err: fmt.Errorf("not a directory")}
	}
	s.mu.Lock()
	s.cwd = target
	s.mu.Unlock()
	return nil
}

func (*SFTP) Caps() Caps {
	return Caps{ExecBit: true}
}

func (s *SFTP) Close() error {
	err := s.client.Close()
	if s.ssh != nil {
		if sshErr := s.ssh.Close(); sshErr != nil && err == nil {
			err = sshErr
		}
	}
	return err
}

func (s *SFTP) abs(name string) string {
	if strings.HasPrefix(name, "/") {
		return path.Clean(name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return path.Join(s.cwd, name)
}
