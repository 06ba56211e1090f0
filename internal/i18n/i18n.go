// Package i18n holds the localized strings the core synthesizes itself:
// welcome messages, simulated acknowledgements, responder fallbacks, and
// alert text. Everything user-authored passes through untranslated.
package i18n

import (
	"github.com/ostazi/chat-core/internal/model"
)

var welcome = map[model.ChannelKind]model.LocalizedText{
	model.ChannelSupport: {
		Arabic:  "مرحباً! كيف يمكننا مساعدتك اليوم؟",
		English: "Hello! How can we help you today?",
		Urdu:    "خوش آمدید! آج ہم آپ کی کیا مدد کر سکتے ہیں؟",
	},
	model.ChannelAIAssistant: {
		Arabic:  "مرحباً! أنا مساعدك الذكي. اسألني أي سؤال دراسي.",
		English: "Hi! I'm your study assistant. Ask me anything.",
		Urdu:    "سلام! میں آپ کا مطالعاتی معاون ہوں۔ کچھ بھی پوچھیں۔",
	},
	model.ChannelCounterparty: {
		Arabic:  "بدأت المحادثة. اكتب رسالتك الأولى.",
		English: "Conversation started. Send your first message.",
		Urdu:    "گفتگو شروع ہو گئی۔ اپنا پہلا پیغام بھیجیں۔",
	},
}

var acknowledgement = map[model.ChannelKind]model.LocalizedText{
	model.ChannelSupport: {
		Arabic:  "شكراً لتواصلك معنا، سيقوم فريق الدعم بالرد عليك قريباً.",
		English: "Thanks for reaching out. Our support team will get back to you shortly.",
		Urdu:    "رابطہ کرنے کا شکریہ۔ ہماری سپورٹ ٹیم جلد جواب دے گی۔",
	},
	model.ChannelCounterparty: {
		Arabic:  "تم استلام رسالتك وسيتم الرد عليك في أقرب وقت.",
		English: "Your message was received. You'll get a reply soon.",
		Urdu:    "آپ کا پیغام موصول ہو گیا، جلد جواب دیا جائے گا۔",
	},
}

var fallback = model.LocalizedText{
	Arabic:  "عذراً، تعذر الوصول إلى الخدمة الآن. حاول مرة أخرى بعد قليل.",
	English: "Sorry, the service could not be reached right now. Please try again in a moment.",
	Urdu:    "معذرت، سروس اس وقت دستیاب نہیں۔ تھوڑی دیر بعد دوبارہ کوشش کریں۔",
}

var alertTitle = map[model.ChannelKind]model.LocalizedText{
	model.ChannelSupport: {
		Arabic:  "رسالة جديدة من الدعم",
		English: "New message from support",
		Urdu:    "سپورٹ کی طرف سے نیا پیغام",
	},
	model.ChannelAIAssistant: {
		Arabic:  "رسالة جديدة من المساعد",
		English: "New message from the assistant",
		Urdu:    "معاون کی طرف سے نیا پیغام",
	},
	model.ChannelCounterparty: {
		Arabic:  "رسالة جديدة",
		English: "New message",
		Urdu:    "نیا پیغام",
	},
}

// Welcome returns the synthesized greeting a channel opens with.
func Welcome(kind model.ChannelKind, locale model.Locale) string {
	return welcome[kind].In(locale)
}

// Acknowledgement returns the simulated human reply for the support and
// counterparty channels. The AI channel never acknowledges; it answers.
func Acknowledgement(kind model.ChannelKind, locale model.Locale) string {
	text, ok := acknowledgement[kind]
	if !ok {
		text = acknowledgement[model.ChannelSupport]
	}
	return text.In(locale)
}

// Fallback returns the reply substituted when a responder is unreachable.
func Fallback(locale model.Locale) string {
	return fallback.In(locale)
}

// AlertTitle returns the local alert title for a message that arrived
// outside the active channel.
func AlertTitle(kind model.ChannelKind, locale model.Locale) string {
	return alertTitle[kind].In(locale)
}
