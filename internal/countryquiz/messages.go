package countryquiz

import "fmt"

var (
	correctMessages = []string{
		"🎉 Correct! You're on fire!",
		"✨ Brilliant! Keep it up!",
		"🌟 Amazing knowledge!",
		"💪 You really know your geography!",
		"🎯 Spot on! Nice work!",
		"🏆 Champion answer!",
		"📚 Well studied!",
		"🌍 World expert in the making!",
	}

	incorrectMessages = []string{
		"Not quite, but you're learning!",
		"Good try! Now you know!",
		"Interesting fact to remember!",
		"Keep going, you've got this!",
		"Every answer is a learning opportunity!",
		"Don't give up, you're improving!",
		"That's a tricky one!",
		"You'll get the next one!",
	}

	streakMessages = []string{
		"🔥 %d in a row!",
		"🔥 %d streak! Incredible!",
		"🔥 %d consecutive! You're unstoppable!",
		"🔥 %d correct answers! Amazing run!",
	}

	strongStreakMessages = []string{
		"🎯 Amazing! %d streak!",
		"🚀 %d straight! Keep climbing!",
	}

	unstoppableMessages = []string{
		"🔥 UNSTOPPABLE! %d in a row!",
		"👑 Legendary! %d correct without a miss!",
	}

	newBestMessages = []string{
		"🏆 NEW PERSONAL BEST! %d streak!",
		"⭐ NEW RECORD! %d in a row!",
		"🎊 PERSONAL BEST! %d streak!",
	}

	resetMessages = []string{
		"Fresh start! Good luck! 🍀",
		"Ready for a new challenge! 💪",
		"Let's see what you've got! 🌟",
		"New game, new opportunities! 🎯",
	}
)

func pick(r Rand, pool []string) string {
	return pool[r.IntN(len(pool))]
}

// Feedback picks the message shown after an answer. Tiers are checked from
// the most specific down: new best, 10+, 5+, 3+, then plain correct.
func Feedback(r Rand, correct bool, streak int, newBest bool) string {
	switch {
	case !correct:
		return pick(r, incorrectMessages)
	case newBest && streak > 1:
		return fmt.Sprintf(pick(r, newBestMessages), streak)
	case streak >= 10:
		return fmt.Sprintf(pick(r, unstoppableMessages), streak)
	case streak >= 5:
		return fmt.Sprintf(pick(r, strongStreakMessages), streak)
	case streak >= 3:
		return fmt.Sprintf(pick(r, streakMessages), streak)
	default:
		return pick(r, correctMessages)
	}
}

func ResetMessage(r Rand) string {
	return pick(r, resetMessages)
}

// AccuracyComment grades an accuracy in [0, 1].
func AccuracyComment(accuracy float64) string {
	switch {
	case accuracy >= 0.9:
		return "🏅 Geography genius!"
	case accuracy >= 0.75:
		return "📊 Great accuracy!"
	case accuracy >= 0.6:
		return "👍 Solid knowledge!"
	case accuracy >= 0.4:
		return "📈 Room to grow!"
	default:
		return "🌱 Keep learning!"
	}
}
