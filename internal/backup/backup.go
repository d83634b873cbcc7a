package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tonwallet/internal/keys"
)

var ErrBackupWrite = errors.New("backup write failed")

// FileExporter writes the plain-text secret backup for a generated account.
// The file is the only durable copy of the mnemonic; the ledger does not
// store it.
type FileExporter struct {
	dir string
}

func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{dir: dir}
}

// Export writes <dir>/<address>.txt containing the address, both keys and
// the mnemonic. Returns the path of the written file.
func (e *FileExporter) Export(account *keys.Account) (string, error) {
	if err := os.MkdirAll(e.dir, 0o700); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackupWrite, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Address: %s\n", account.Address)
	fmt.Fprintf(&b, "Public Key: %s\n", account.PublicKey)
	fmt.Fprintf(&b, "Private Key: %s\n", account.PrivateKey)
	fmt.Fprintf(&b, "Mnemonic: %s\n", strings.Join(account.Mnemonic, " "))

	path := filepath.Join(e.dir, account.Address+".txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackupWrite, err)
	}
	return path, nil
}
