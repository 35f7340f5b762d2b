// Package artifact provides a uniform abstraction over inspectable build
// outputs: loose files, directories, packaged archives, and locations or
// entries inside an archive.
//
// All five kinds implement the Artifact interface (existence, emptiness,
// description). Container kinds (Dir, Archive, ArchivePath) additionally
// implement Container and can enumerate their descendant paths; leaf kinds
// (File, ArchiveEntry) implement Leaf and expose their content.
//
// INVARIANTS:
//
// Queries reflect the already-built state. Asking whether an artifact exists
// never triggers anything that would produce it — a missing file reports
// "does not exist" rather than forcing creation.
//
// Archive listings are read lazily on first query and cached for the
// lifetime of the Archive value. ArchivePath and ArchiveEntry values hold a
// pointer to their Archive and share that single cached listing, so
// addressing many locations inside one archive costs one directory read.
// The listing is read-only after load.
//
// Entry path composition normalizes through "/"-joining:
// Archive.Path("a").Entry("b") addresses the same entry as
// Archive.Entry("a/b"), and empty path segments collapse away.
package artifact
