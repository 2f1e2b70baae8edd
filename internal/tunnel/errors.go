package tunnel

import "errors"

var (
	// ErrConnect indicates that the SSH connection could not be established.
	ErrConnect = errors.New("error connecting to ssh host")
	// ErrRemoteListen indicates that the remote port could not be opened.
	ErrRemoteListen = errors.New("error opening remote port")
	// ErrInvalidHostKey indicates that sshTunnel.hostKey is not a valid
	// authorized_keys line.
	ErrInvalidHostKey = errors.New("invalid ssh host key")
)
