package constant

// ArtifactKind names a generated media type that carries a save-state.
type ArtifactKind string

const (
	ArtifactKindImage  ArtifactKind = "image"
	ArtifactKindSpeech ArtifactKind = "speech"
)

func (k ArtifactKind) Valid() bool {
	return k == ArtifactKindImage || k == ArtifactKindSpeech
}

// Topic of the in-process notification queue.
const JobSendNotification = "send-notification"

// Notification type codes; also used as NATS subject suffixes.
const (
	NotificationImageGenerated  = "IMAGE_GENERATED"
	NotificationSpeechGenerated = "SPEECH_GENERATED"
	NotificationArtifactSaved   = "ARTIFACT_SAVED"
	NotificationArtifactUnsaved = "ARTIFACT_UNSAVED"
)

const (
	ArtifactContentTypePNG  = "image/png"
	ArtifactContentTypeMPEG = "audio/mpeg"
)
