package expect

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkpack/checkpack/internal/artifact"
	"github.com/checkpack/checkpack/internal/matcher"
	"github.com/checkpack/checkpack/internal/testutil"
)

func TestVerify_EmptyRegistryPasses(t *testing.T) {
	r := NewRunner(nil)
	err := r.Verify(NewRegistry(unit{name: "app"}))
	require.NoError(t, err)
	assert.Equal(t, StatePassed, r.State())
}

func TestVerify_BlocklessExpectationsPass(t *testing.T) {
	reg := NewRegistry(unit{name: "app"})
	reg.Expect("to be implemented")
	reg.Expect("also pending")

	assert.NoError(t, NewRunner(nil).Verify(reg))
}

func TestVerify_DoesNotShortCircuitAcrossExpectations(t *testing.T) {
	reg := NewRegistry(unit{name: "app"})
	var order []string

	reg.Expect("first fails", Assertion(func(any) error {
		order = append(order, "first")
		return errors.New("first failure")
	}))
	reg.Expect("second still runs", Assertion(func(any) error {
		order = append(order, "second")
		return nil
	}))
	reg.Expect("third fails too", Assertion(func(any) error {
		order = append(order, "third")
		return errors.New("third failure")
	}))

	r := NewRunner(nil)
	err := r.Verify(reg)
	require.Error(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
	assert.Equal(t, StateFailed, r.State())

	var verr *VerificationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 3, verr.Evaluated)
	require.Len(t, verr.Failures, 2)
	assert.Equal(t, "first fails", verr.Failures[0].Description)
	assert.Equal(t, "third fails too", verr.Failures[1].Description)
}

func TestVerify_MessageEnumeratesEveryFailure(t *testing.T) {
	reg := NewRegistry(unit{name: "app"})
	reg.Expect("check one", Assertion(func(any) error { return errors.New("cause one") }))
	reg.Expect("check two", Assertion(func(any) error { return errors.New("cause two") }))

	err := NewRunner(nil).Verify(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 2 expectation(s)")
	assert.Contains(t, err.Error(), "check one")
	assert.Contains(t, err.Error(), "cause one")
	assert.Contains(t, err.Error(), "check two")
	assert.Contains(t, err.Error(), "cause two")
}

func TestVerify_PanicInBlockIsCapturedAsFailure(t *testing.T) {
	reg := NewRegistry(unit{name: "app"})
	reg.Expect("panics", Assertion(func(any) error { panic("kaboom") }))
	reg.Expect("still evaluated", Assertion(func(any) error { return nil }))

	err := NewRunner(nil).Verify(reg)
	require.Error(t, err)

	var verr *VerificationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Failures, 1)
	assert.Contains(t, verr.Failures[0].Cause.Error(), "kaboom")
}

func TestRun_SecondInvocationIsRejected(t *testing.T) {
	reg := NewRegistry(unit{name: "app"})
	r := NewRunner(nil)

	_, err := r.Run(reg)
	require.NoError(t, err)

	_, err = r.Run(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already ran")
}

// Scenario A: a declared-but-never-built file; asserting exist yields
// exactly one consolidated failure naming that file.
func TestVerify_MissingPlainFile(t *testing.T) {
	missing := artifact.NewFile(filepath.Join(t.TempDir(), "never-built.txt"))

	reg := NewRegistry(unit{name: "app"})
	reg.Expect(missing, Assertion(func(s any) error {
		return matcher.Exist(s.(artifact.Artifact))
	}))

	err := NewRunner(nil).Verify(reg)
	require.Error(t, err)

	var verr *VerificationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Failures, 1)
	assert.Contains(t, verr.Failures[0].Description, "never-built.txt")
}

// Scenario B: an archive packed from a directory containing
// resources/test; contain("test") on the resources path passes.
func TestVerify_ArchivePathContains(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "dist.zip")
	testutil.BuildZip(t, zipPath, map[string]string{
		"resources/test": "payload",
	})
	subject := artifact.NewArchive(zipPath).Path("resources")

	reg := NewRegistry(unit{name: "app"})
	reg.Expect(subject, Assertion(func(s any) error {
		return matcher.Contain(s.(artifact.Artifact), "test")
	}))

	assert.NoError(t, NewRunner(nil).Verify(reg))
}

// Scenario C: beEmpty on an archive entry fails when the packed source
// file was non-empty and passes when it was empty.
func TestVerify_ArchiveEntryBeEmpty(t *testing.T) {
	dir := t.TempDir()

	nonEmpty := filepath.Join(dir, "full.zip")
	testutil.BuildZip(t, nonEmpty, map[string]string{"resources/test": "payload"})

	empty := filepath.Join(dir, "empty.zip")
	testutil.BuildZip(t, empty, map[string]string{"resources/test": ""})

	beEmpty := Assertion(func(s any) error {
		return matcher.BeEmpty(s.(artifact.Artifact))
	})

	failing := NewRegistry(unit{name: "app"})
	failing.Expect(artifact.NewArchive(nonEmpty).Entry("resources/test"), beEmpty)
	require.Error(t, NewRunner(nil).Verify(failing))

	passing := NewRegistry(unit{name: "app"})
	passing.Expect(artifact.NewArchive(empty).Entry("resources/test"), beEmpty)
	require.NoError(t, NewRunner(nil).Verify(passing))
}

func TestVerify_AccessErrorBecomesExpectationFailure(t *testing.T) {
	// A broken archive fails the expectations touching it but does not
	// abort the run.
	dir := t.TempDir()
	broken := testutil.WriteFile(t, dir, "broken.zip", "not a zip")
	good := testutil.WriteFile(t, dir, "ok.txt", "x")

	reg := NewRegistry(unit{name: "app"})
	reg.Expect(artifact.NewArchive(broken), Assertion(func(s any) error {
		return matcher.Exist(s.(artifact.Artifact))
	}))
	reg.Expect(artifact.NewFile(good), Assertion(func(s any) error {
		return matcher.Exist(s.(artifact.Artifact))
	}))

	err := NewRunner(nil).Verify(reg)
	require.Error(t, err)

	var verr *VerificationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Failures, 1)
	assert.True(t, artifact.IsAccessError(verr.Failures[0].Cause))
}
