package session

import (
	"context"
	"io"

	"github.com/myc22ka/mathapp-client/pkg/mathsdk"
)

// profileImageFilename is the local name used when saving a downloaded avatar.
const profileImageFilename = "profile-photo"

// UploadProfileImage sends a new avatar and reconciles the user record
// through the whoami probe.
func (s *Service) UploadProfileImage(ctx context.Context, filename string, content io.Reader) {
	defer s.beginSubmit()()

	resp, err := s.api.UploadProfileImage(ctx, filename, content)
	if err != nil {
		s.notify.Error(mathsdk.Message(err))
		return
	}

	s.notify.Success(resp.Message)
	s.RefreshUser(ctx)
}

// DeleteProfileImage removes the avatar using a two-phase optimistic update:
// the local photo reference is tentatively cleared up front so the UI reacts
// immediately, then reconciled with the authoritative server state on
// success or rolled back explicitly on failure.
func (s *Service) DeleteProfileImage(ctx context.Context) {
	defer s.beginSubmit()()

	// Phase one: tentative local clear, remembering the prior value.
	s.mu.Lock()
	var previous *string
	if s.user != nil {
		previous = s.user.ProfilePhotoURL
		s.user.ProfilePhotoURL = nil
	}
	s.mu.Unlock()

	resp, err := s.api.DeleteProfileImage(ctx)
	if err != nil {
		// Phase two (failure): restore the tentative clear.
		s.mu.Lock()
		if s.user != nil {
			s.user.ProfilePhotoURL = previous
		}
		s.mu.Unlock()

		s.notify.Error(mathsdk.Message(err))
		return
	}

	// Phase two (success): server response is authoritative.
	s.notify.Success(resp.Message)
	s.RefreshUser(ctx)
}

// DownloadProfileImage retrieves the avatar bytes and hands them to the file
// saver for a client-side save.
func (s *Service) DownloadProfileImage(ctx context.Context) {
	defer s.beginSubmit()()

	content, err := s.api.DownloadProfileImage(ctx)
	if err != nil {
		s.notify.Error(mathsdk.Message(err))
		return
	}

	if err := s.files.Save(profileImageFilename, content); err != nil {
		s.notify.Error("Failed to save the downloaded image")
		return
	}

	s.notify.Success("Profile image downloaded")
}
