package service

import "strings"

// ChatService is the IVOR scripted responder: a fixed set of keyword-matched
// replies with no model and no state. Respond is pure and deterministic; the
// first matching bucket wins, in declaration order.
type ChatService interface {
	Respond(input string) string
}

type chatService struct{}

func NewChatService() ChatService {
	return &chatService{}
}

type chatBucket struct {
	triggers []string
	reply    string
}

// chatBuckets are checked top to bottom; put the more specific triggers
// before the catch-all greetings.
var chatBuckets = []chatBucket{
	{
		triggers: []string{"problem", "challenge", "struggling", "stuck"},
		reply: "Let's work through this together. Whatever you're facing, you don't have to figure it out alone.\n\n" +
			"Start by telling me a little more about what's going on — what's the situation, and what would a good outcome look like for you?\n\n" +
			"If it's urgent or you're in crisis, please reach out to Switchboard on 0800 0119 100 (24/7) or text SHOUT to 85258.",
	},
	{
		triggers: []string{"joke", "humor", "humour", "funny", "laugh"},
		reply: "Alright, you asked for it: why did the community organizer bring a ladder to the meeting? Because they heard the stakes were high.\n\n" +
			"I'll keep my day job. But honestly, joy is resistance too — if you want something genuinely funny, come to one of our open mic nights. Check the events page for the next one.",
	},
	{
		triggers: []string{"event", "events", "happening", "calendar", "what's on", "whats on"},
		reply: "There's always something going on. The events calendar lists everything that's been approved by our moderators — workshops, socials, organizing meetings and more.\n\n" +
			"Head to the Events section to browse what's coming up, or submit your own event and our team will review it.",
	},
	{
		triggers: []string{"housing", "shelter", "homeless", "eviction", "landlord"},
		reply: "Housing stress is heavy, and you deserve support with it.\n\n" +
			"Our housing resources cover emergency accommodation, tenants' rights and LGBTQ+-affirming housing services. The Albert Kennedy Trust (akt) supports young LGBTQ+ people facing homelessness: 0161 228 3308.\n\n" +
			"If you'd like, tell me more about your situation and I can point you at the most relevant resource.",
	},
	{
		triggers: []string{"health", "wellbeing", "well-being", "mental", "therapy", "anxious", "depressed"},
		reply: "Your wellbeing matters, full stop.\n\n" +
			"We keep a directory of Black-affirming and queer-affirming therapists, peer support circles and sexual health services. Black Minds Matter UK offers free therapy with Black therapists.\n\n" +
			"Would you like links for talking therapy, peer support, or sexual health?",
	},
	{
		triggers: []string{"organizing", "organising", "activism", "volunteer", "campaign", "mutual aid"},
		reply: "Love to hear it — this community runs on people who show up.\n\n" +
			"There are organizing meetings and mutual aid projects listed on the events calendar, and the newsroom covers ongoing campaigns. If you have capacity to volunteer, submit your details through the get-involved form and a coordinator will be in touch.",
	},
	{
		triggers: []string{"hello", "hey", "hi ", "good morning", "good evening"},
		reply: "Hey, welcome! I'm IVOR, the community assistant.\n\n" +
			"I can point you at events, community news, housing and wellbeing resources, or ways to get involved. What are you looking for today?",
	},
	{
		triggers: []string{"thank", "thanks", "appreciate"},
		reply: "You're very welcome. That's what I'm here for.\n\n" +
			"Come back any time — and if something here helped you, consider passing it on to someone else in the community.",
	},
}

// defaultChatReply is returned when no bucket matches.
const defaultChatReply = "I'm IVOR, the community assistant. I'm a simple soul — I know about events, community news, " +
	"housing, health and wellbeing, and ways to get involved.\n\n" +
	"Try asking me about one of those, or browse the site directly. If you need a human, the contact page lists how to reach the team."

// Respond lowercases the input and returns the first bucket whose trigger
// appears as a substring, or the default reply.
func (s *chatService) Respond(input string) string {
	text := strings.ToLower(input)
	for _, bucket := range chatBuckets {
		for _, trigger := range bucket.triggers {
			if strings.Contains(text, trigger) {
				return bucket.reply
			}
		}
	}
	return defaultChatReply
}
