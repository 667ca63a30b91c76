package artifacts

import (
	"fmt"
	"time"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
)

// ScanImage streams layers of a remote image and emits each text entry.
// Layers are decompressed in memory, never written to disk. Authentication
// uses the local Docker keychain when available.
func ScanImage(imageRef string, limits Limits, emit EmitFunc) error {
	ref, err := name.ParseReference(imageRef)
	if err != nil {
		return fmt.Errorf("invalid image reference %q: %w", imageRef, err)
	}

	img, err := remote.Image(ref, remote.WithAuthFromKeychain(authn.DefaultKeychain))
	if err != nil {
		return fmt.Errorf("fetch image %q: %w", imageRef, err)
	}

	layers, err := img.Layers()
	if err != nil {
		return fmt.Errorf("list layers for %q: %w", imageRef, err)
	}

	var decompressed int64
	var entries int
	deadline := time.Time{}
	if limits.TimeBudget > 0 {
		deadline = time.Now().Add(limits.TimeBudget)
	}

	for _, layer := range layers {
		if limitsExceeded(limits, decompressed, entries, deadline) {
			return nil
		}
		digest, err := layer.Digest()
		if err != nil {
			continue
		}
		rc, err := layer.Uncompressed()
		if err != nil {
			return fmt.Errorf("read layer %s: %w", digest, err)
		}
		prefix := fmt.Sprintf("%s::%s", imageRef, digest.String())
		err = walkTar(prefix, limits, &decompressed, &entries, deadline, emit, rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
