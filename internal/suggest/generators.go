package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pvallone/quill/internal/entry"
)

// quoteChars is the maximum length of an anniversary quote.
const quoteChars = 50

// newSuggestion stamps a fresh suggestion at now.
func newSuggestion(now time.Time, cat Category, title, subtitle, prompt, icon string) Suggestion {
	return Suggestion{
		ID:        uuid.New(),
		Category:  cat,
		Title:     title,
		Subtitle:  subtitle,
		Prompt:    prompt,
		Icon:      icon,
		CreatedAt: now.UnixMilli(),
	}
}

// locationSuggestions prompts about places visited in the trailing 14 days.
// At most two distinct locations, in first-seen order.
func (e *Engine) locationSuggestions(ctx context.Context, now time.Time) ([]Suggestion, error) {
	start := now.AddDate(0, 0, -14).UnixMilli()
	entries, err := e.src.EntriesBetween(ctx, start, now.UnixMilli())
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var suggestions []Suggestion
	for _, en := range entries {
		if en.Location == nil {
			continue
		}
		loc := strings.TrimSpace(*en.Location)
		if loc == "" || seen[loc] {
			continue
		}
		seen[loc] = true

		s := newSuggestion(now, CategoryLocation,
			fmt.Sprintf("Remember %s?", loc),
			"A place from your recent entries",
			fmt.Sprintf("You wrote at %s recently. What stood out about being there? What would you notice if you went back today?", loc),
			"map-pin",
		)
		s.Source = &loc
		suggestions = append(suggestions, s)

		if len(suggestions) == 2 {
			break
		}
	}
	return suggestions, nil
}

// weatherSuggestion matches a prompt to the most recent entry's weather.
func (e *Engine) weatherSuggestion(ctx context.Context, now time.Time) ([]Suggestion, error) {
	latest, err := e.src.LatestEntry(ctx)
	if err != nil {
		return nil, err
	}
	if latest == nil || latest.WeatherCondition == nil {
		return nil, nil
	}

	condition := strings.ToLower(*latest.WeatherCondition)
	var title, prompt string
	switch {
	case strings.Contains(condition, "clear") || strings.Contains(condition, "sunn"):
		title = "Sunny disposition"
		prompt = "The sun was out last time you wrote. How does bright weather change your energy? What did you do with it?"
	case strings.Contains(condition, "rain") || strings.Contains(condition, "drizzle"):
		title = "Rainy day reflections"
		prompt = "It was raining when you last wrote. Rain slows things down. What has the slower pace made room for?"
	case strings.Contains(condition, "cloud") || strings.Contains(condition, "overcast"):
		title = "Under the clouds"
		prompt = "Grey skies in your last entry. Overcast days can feel muted or cozy. Which was it for you?"
	case strings.Contains(condition, "snow"):
		title = "Snow day"
		prompt = "Snow showed up in your last entry. What does snow change about your day, your plans, your mood?"
	default:
		title = "Weather check"
		prompt = "How has the weather been shaping your days lately? Does it show up in your mood?"
	}

	s := newSuggestion(now, CategoryWeather, title, "Based on your last entry's weather", prompt, "cloud-sun")
	s.Source = latest.WeatherCondition
	return []Suggestion{s}, nil
}

// streakSuggestion celebrates a running streak or welcomes a lapsed writer
// back. Streaks of 1-2 days and never-written users get nothing.
func (e *Engine) streakSuggestion(ctx context.Context, now time.Time) ([]Suggestion, error) {
	streak, err := e.calculateStreak(ctx, now)
	if err != nil {
		return nil, err
	}

	if streak >= 3 {
		s := newSuggestion(now, CategoryStreak,
			fmt.Sprintf("%d days and counting", streak),
			"Your writing streak",
			fmt.Sprintf("You've written %d days in a row. What's keeping you coming back? Write about what this habit is giving you.", streak),
			"flame",
		)
		return []Suggestion{s}, nil
	}

	if streak == 0 {
		total, _, err := e.src.Totals(ctx)
		if err != nil {
			return nil, err
		}
		if total > 0 {
			s := newSuggestion(now, CategoryStreak,
				"Welcome back",
				"It's been a little while",
				"No pressure to catch up on everything. What's one thing from the gap worth putting down?",
				"flame",
			)
			return []Suggestion{s}, nil
		}
	}

	return nil, nil
}

// CalculateWritingStreak returns the current consecutive-day writing streak,
// walking backward from today and stopping at the first day without entries.
func (e *Engine) CalculateWritingStreak(ctx context.Context) (int, error) {
	return e.calculateStreak(ctx, e.now())
}

func (e *Engine) calculateStreak(ctx context.Context, now time.Time) (int, error) {
	streak := 0
	day := now
	for {
		start, end := localDayBounds(day)
		count, err := e.src.CountBetween(ctx, start, end)
		if err != nil {
			return 0, err
		}
		if count == 0 {
			return streak, nil
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// timeOfDaySuggestion buckets the current hour and alternates between two
// prompt variants per bucket, flipping daily via the day-of-year parity.
func (e *Engine) timeOfDaySuggestion(_ context.Context, now time.Time) ([]Suggestion, error) {
	type bucket struct {
		title   string
		icon    string
		prompts [2]string
	}

	var b bucket
	switch hour := now.Hour(); {
	case hour >= 5 && hour <= 11:
		b = bucket{
			title: "Morning pages",
			icon:  "sunrise",
			prompts: [2]string{
				"It's early. What would make today feel well spent, even if nothing else goes to plan?",
				"Before the day fills up: what's on your mind right now, unfiltered?",
			},
		}
	case hour >= 12 && hour <= 16:
		b = bucket{
			title: "Midday pause",
			icon:  "sun",
			prompts: [2]string{
				"Halfway through the day. What's gone differently than you expected this morning?",
				"Take a breath. What's one moment from today so far worth keeping?",
			},
		}
	case hour >= 17 && hour <= 21:
		b = bucket{
			title: "Evening wind-down",
			icon:  "sunset",
			prompts: [2]string{
				"The day is winding down. What are you carrying from it that you'd like to set down here?",
				"Looking back at today: what deserves more attention than it got?",
			},
		}
	default:
		b = bucket{
			title: "Night thoughts",
			icon:  "moon",
			prompts: [2]string{
				"It's late. What's keeping you up, or what's worth recording before sleep?",
				"The quiet hours are good for honesty. What have you not said out loud today?",
			},
		}
	}

	s := newSuggestion(now, CategoryTimeOfDay, b.title, "A prompt for this hour",
		b.prompts[now.YearDay()%2], b.icon)
	return []Suggestion{s}, nil
}

// anniversarySuggestion surfaces an entry written around this date last year,
// using a 3-day window centered one year back.
func (e *Engine) anniversarySuggestion(ctx context.Context, now time.Time) ([]Suggestion, error) {
	target := now.AddDate(-1, 0, 0)
	start, _ := localDayBounds(target.AddDate(0, 0, -1))
	_, end := localDayBounds(target.AddDate(0, 0, 1))

	entries, err := e.src.EntriesBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	quote := entry.Preview(entries[0].PlainText, quoteChars)
	s := newSuggestion(now, CategoryAnniversary,
		"On this day",
		"One year ago",
		fmt.Sprintf("A year ago you wrote: %q. Reading it now, what has changed, and what hasn't?", quote),
		"calendar",
	)
	return []Suggestion{s}, nil
}

// moodSuggestion looks for a dominant mood or notable variety over the
// trailing 7 days. Fewer than 2 recorded moods yields nothing.
func (e *Engine) moodSuggestion(ctx context.Context, now time.Time) ([]Suggestion, error) {
	start := now.AddDate(0, 0, -7).UnixMilli()
	entries, err := e.src.EntriesBetween(ctx, start, now.UnixMilli())
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	recorded := 0
	for _, en := range entries {
		if en.Mood == nil {
			continue
		}
		mood := strings.TrimSpace(*en.Mood)
		if mood == "" {
			continue
		}
		counts[mood]++
		recorded++
	}

	if recorded < 2 {
		return nil, nil
	}

	dominantMood, dominantCount := "", 0
	for mood, count := range counts {
		if count > dominantCount || (count == dominantCount && mood < dominantMood) {
			dominantMood, dominantCount = mood, count
		}
	}

	if dominantCount >= 3 {
		s := newSuggestion(now, CategoryMood,
			fmt.Sprintf("You've been feeling %s", dominantMood),
			"A pattern from the past week",
			fmt.Sprintf("%q has come up %d times this week. What's behind it? Is it something to lean into or to change?", dominantMood, dominantCount),
			"heart",
		)
		s.Source = &dominantMood
		return []Suggestion{s}, nil
	}

	if len(counts) >= 3 {
		s := newSuggestion(now, CategoryMood,
			"Shifting moods",
			"A varied week",
			"Your moods have moved around a lot this week. What's been driving the shifts?",
			"heart",
		)
		return []Suggestion{s}, nil
	}

	return nil, nil
}

// habitSuggestion classifies the overall writing habit from aggregate totals.
func (e *Engine) habitSuggestion(ctx context.Context, now time.Time) ([]Suggestion, error) {
	total, words, err := e.src.Totals(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	average := float64(words) / float64(total)
	switch {
	case total > 10 && average > 200:
		s := newSuggestion(now, CategoryHabit,
			"Deep thinker",
			fmt.Sprintf("%d entries, %.0f words on average", total, average),
			"Your entries run long and thoughtful. Try the opposite today: capture one idea in three sentences.",
			"book-open",
		)
		return []Suggestion{s}, nil
	case total > 10:
		s := newSuggestion(now, CategoryHabit,
			"Committed writer",
			fmt.Sprintf("%d entries so far", total),
			"You keep showing up. Today, pick one past entry topic and go a layer deeper than usual.",
			"book-open",
		)
		return []Suggestion{s}, nil
	}

	return nil, nil
}

// localDayBounds returns the inclusive [start, end] millis of t's local day.
func localDayBounds(t time.Time) (int64, int64) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1)
	return start.UnixMilli(), end.UnixMilli() - 1
}
