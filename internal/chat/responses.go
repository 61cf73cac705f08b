package chat

import (
	"math/rand"
)

// Canned reply pools. One is picked at random so repeated questions do not
// read like a broken record.
var responseVariations = map[Intent][]string{
	IntentGreeting: {
		"Hello! How can I assist you with your visit to Sunrise Medical Center today?",
		"Hi there! I'm here to help you with appointments at Sunrise Medical Center.",
		"Welcome to Sunrise Medical Center! Would you like to book an appointment or manage an existing one?",
	},
	IntentBooking: {
		"I'll help you book an appointment. First, please pick a category:",
		"Let's get you scheduled with one of our doctors. Which category are you interested in?",
		"I can help you book a visit. What type of care do you need?",
	},
	IntentManaging: {
		"Would you like to reschedule or cancel an appointment?",
		"I can help you manage your booking. Would you like to reschedule or cancel it?",
		"What would you like to do with your appointment - reschedule or cancel?",
	},
	IntentLocation: {
		"Our clinic is located at 123 Health Street, Medical District, 50000 Kuala Lumpur, Malaysia. Need directions?",
		"You can find us at 123 Health Street, Medical District, 50000 Kuala Lumpur.",
		"We're conveniently located at 123 Health Street, Medical District, 50000 Kuala Lumpur, with parking available.",
	},
	IntentContact: {
		"You can reach us at 012-345 6789 during our operating hours.",
		"Feel free to call us at 012-345 6789 for any immediate inquiries.",
		"Our clinic contact number is 012-345 6789. How can we assist you?",
	},
	IntentHelp: {
		"I can help you with:\n• Booking appointments at Sunrise Medical Center\n• Managing your existing appointments\n• Finding our clinic location\n• Contacting us\n\nWhat would you like to do?",
		"Here's what I can assist you with:\n1. Schedule appointments with our doctors\n2. Reschedule/cancel existing appointments\n3. Get clinic location and directions\n4. Contact information\n\nHow may I help you?",
	},
}

const welcomeMessage = "Welcome to Sunrise Medical Center's virtual assistant! How can I help you today?"

const fallbackMessage = "I didn't quite catch that. Could you please rephrase your question so I can better assist you?"

func randomResponse(intent Intent) string {
	pool := responseVariations[intent]
	if len(pool) == 0 {
		return fallbackMessage
	}
	return pool[rand.Intn(len(pool))]
}
