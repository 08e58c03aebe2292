package bot

import "golang.org/x/text/language"

// The bot launched for an Indonesian audience, so Indonesian is the default
// when the Telegram language code is missing or unsupported.
var replyMatcher = language.NewMatcher([]language.Tag{
	language.Indonesian,
	language.English,
})

type messages struct {
	welcome        string // fmt: daily limit
	quotaExceeded  string // fmt: daily limit
	chooseModel    string
	chooseDuration string
	durationLabel  string // fmt: seconds
	starting       string
	processing     string
	generating     string
	sessionExpired string
	incomplete     string
	submitFailed   string // fmt: reason
	generateFailed string // fmt: reason
	genericFailure string
	videoDone      string
	videoCaption   string
}

var catalogs = map[string]messages{
	"id": {
		welcome:        "Halo! Kirimkan foto dengan caption untuk mulai generate video AI.\n\nKuota harian: %d video.",
		quotaExceeded:  "Maaf, kuota harian Anda (%d video) sudah habis. Silakan coba lagi besok.",
		chooseModel:    "Pilih Model Video:",
		chooseDuration: "Pilih Durasi Video:",
		durationLabel:  "%s Detik",
		starting:       "Memulai proses...",
		processing:     "⏳ Sedang memproses gambar...",
		generating:     "🚀 Video sedang di-generate. Mohon tunggu, ini mungkin memakan waktu beberapa menit...",
		sessionExpired: "Sesi kadaluarsa. Silakan kirim foto lagi.",
		incomplete:     "Pilih model dan durasi video terlebih dahulu.",
		submitFailed:   "❌ Gagal: %s",
		generateFailed: "❌ Gagal generate video: %s",
		genericFailure: "Unknown error",
		videoDone:      "✅ Video selesai!",
		videoCaption:   "Hasil generate video AI Freepik",
	},
	"en": {
		welcome:        "Hi! Send a photo with a caption to start generating an AI video.\n\nDaily quota: %d videos.",
		quotaExceeded:  "Sorry, your daily quota (%d videos) is used up. Please try again tomorrow.",
		chooseModel:    "Choose a video model:",
		chooseDuration: "Choose a video duration:",
		durationLabel:  "%s sec",
		starting:       "Starting...",
		processing:     "⏳ Processing your photo...",
		generating:     "🚀 Your video is being generated. This may take a few minutes...",
		sessionExpired: "Session expired. Please send a photo again.",
		incomplete:     "Please pick a model and duration first.",
		submitFailed:   "❌ Failed: %s",
		generateFailed: "❌ Video generation failed: %s",
		genericFailure: "Unknown error",
		videoDone:      "✅ Your video is ready!",
		videoCaption:   "AI video generated by Freepik",
	},
}

// messagesFor picks the reply catalog best matching a Telegram language code.
func messagesFor(langCode string) messages {
	tag, _ := language.MatchStrings(replyMatcher, langCode)
	base, _ := tag.Base()
	if m, ok := catalogs[base.String()]; ok {
		return m
	}
	return catalogs["id"]
}
