package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// UpdateEnv forces every snapshot to be rewritten when set to 1
const UpdateEnv = "UPDATE_SNAPSHOTS"

var (
	lock      sync.Mutex
	funcCount = make(map[string]int)
)

// ValidateSnapshot compares obj, encoded as indented JSON, with
// testdata/<pkg>.<func>-<n>.json, where n counts the calls made from the
// same test function. A missing snapshot is written and the check passes.
// depth is the number of helper frames between the test and this call.
func ValidateSnapshot(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) bool {
	t.Helper()

	filename := nextFilename(2 + depth)
	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not encode snapshot: %v", err)
	}

	expects, err := os.ReadFile(filename)
	if os.IsNotExist(err) || os.Getenv(UpdateEnv) == "1" {
		write(t, filename, objJSON)
		return true
	} else if err != nil {
		t.Fatalf("could not read snapshot: %v", err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s, rerun with %s=1 to update", filename, UpdateEnv)
		return false
	}

	return true
}

func nextFilename(skip int) string {
	pc, _, _, _ := runtime.Caller(skip)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	lock.Lock()
	call := funcCount[funcName]
	funcCount[funcName] = call + 1
	lock.Unlock()

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.json", funcName, call))
}

func write(t *testing.T, filename string, objJSON []byte) {
	t.Helper()

	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatalf("could not create snapshot directory: %v", err)
	}

	if err := os.WriteFile(filename, append(objJSON, '\n'), 0644); err != nil {
		t.Fatalf("could not write snapshot: %v", err)
	}
}
