// Package questionbank holds the static question catalog. The bank is
// compiled in and immutable; storage backends only customize how it is
// served, never its contents.
package questionbank

import "edquiz-service/internal/domain"

// SubjectInfo is display metadata for one subject.
type SubjectInfo struct {
	Subject     domain.Subject `json:"subject"`
	Name        string         `json:"name"`
	Icon        string         `json:"icon"`
	Description string         `json:"description"`
}

// Subjects returns display metadata for the four categories.
func Subjects() []SubjectInfo {
	return []SubjectInfo{
		{domain.SubjectMathematics, "Mathematics", "🧮", "Numbers, equations, and problem-solving"},
		{domain.SubjectScience, "Science", "🧪", "Physics, Chemistry, Biology, and more"},
		{domain.SubjectEnglish, "English", "📚", "Grammar, vocabulary, and literature"},
		{domain.SubjectSocial, "Social Studies", "🌍", "History, geography, and civics"},
	}
}

// All returns the full catalog keyed by subject. Callers must not mutate
// the returned questions; ForSubject hands out copies.
func All() map[domain.Subject][]domain.Question {
	return bank
}

// ForSubject returns a copy of the subject's question list, or nil for an
// unknown subject.
func ForSubject(subject domain.Subject) []domain.Question {
	questions, ok := bank[subject]
	if !ok {
		return nil
	}
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	return out
}

var bank = map[domain.Subject][]domain.Question{
	domain.SubjectMathematics: {
		{
			ID:          "math_001",
			Prompt:      "What is 15 × 7?",
			Options:     []string{"95", "105", "115", "125"},
			Correct:     1,
			Explanation: "15 × 7 = 105. When multiplying by 15, you can think of it as (10 × 7) + (5 × 7) = 70 + 35 = 105.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "arithmetic",
		},
		{
			ID:          "math_002",
			Prompt:      "Solve for x: 2x + 8 = 20",
			Options:     []string{"x = 4", "x = 6", "x = 8", "x = 10"},
			Correct:     1,
			Explanation: "2x + 8 = 20. Subtract 8 from both sides: 2x = 12. Divide by 2: x = 6.",
			Difficulty:  domain.DifficultyMedium,
			Topic:       "algebra",
		},
		{
			ID:          "math_003",
			Prompt:      "What is the area of a circle with radius 5 cm? (π ≈ 3.14)",
			Options:     []string{"78.5 cm²", "31.4 cm²", "15.7 cm²", "62.8 cm²"},
			Correct:     0,
			Explanation: "Area = πr². With r = 5: Area = 3.14 × 5² = 3.14 × 25 = 78.5 cm².",
			Difficulty:  domain.DifficultyMedium,
			Topic:       "geometry",
		},
		{
			ID:          "math_004",
			Prompt:      "What is 25% of 80?",
			Options:     []string{"15", "20", "25", "30"},
			Correct:     1,
			Explanation: "25% of 80 = 0.25 × 80 = 20. Or think: 25% is 1/4, so 80 ÷ 4 = 20.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "percentage",
		},
		{
			ID:          "math_005",
			Prompt:      "If a triangle has angles 60°, 60°, what is the third angle?",
			Options:     []string{"30°", "45°", "60°", "90°"},
			Correct:     2,
			Explanation: "Sum of angles in a triangle = 180°. So 60° + 60° + third angle = 180°. Third angle = 60°.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "geometry",
		},
		{
			ID:          "math_006",
			Prompt:      "Simplify: √(144)",
			Options:     []string{"10", "11", "12", "13"},
			Correct:     2,
			Explanation: "√144 = 12, because 12 × 12 = 144.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "roots",
		},
		{
			ID:          "math_007",
			Prompt:      "What is the slope of the line y = 3x + 5?",
			Options:     []string{"3", "5", "3/5", "5/3"},
			Correct:     0,
			Explanation: "In the equation y = mx + b, m is the slope. Here m = 3, so slope = 3.",
			Difficulty:  domain.DifficultyMedium,
			Topic:       "algebra",
		},
		{
			ID:          "math_008",
			Prompt:      "Factor: x² - 9",
			Options:     []string{"(x-3)(x+3)", "(x-9)(x+1)", "(x-1)(x-9)", "(x+3)(x+3)"},
			Correct:     0,
			Explanation: "x² - 9 is a difference of squares: x² - 3² = (x-3)(x+3).",
			Difficulty:  domain.DifficultyHard,
			Topic:       "algebra",
		},
		{
			ID:          "math_009",
			Prompt:      "What is 3² + 4²?",
			Options:     []string{"25", "49", "12", "7"},
			Correct:     0,
			Explanation: "3² + 4² = 9 + 16 = 25. This is also a Pythagorean triple.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "arithmetic",
		},
		{
			ID:          "math_010",
			Prompt:      "If 5x - 3 = 17, what is x?",
			Options:     []string{"2", "3", "4", "5"},
			Correct:     2,
			Explanation: "5x - 3 = 17. Add 3: 5x = 20. Divide by 5: x = 4.",
			Difficulty:  domain.DifficultyMedium,
			Topic:       "algebra",
		},
	},
	domain.SubjectScience: {
		{
			ID:          "sci_001",
			Prompt:      "What is the chemical symbol for gold?",
			Options:     []string{"Go", "Gd", "Au", "Ag"},
			Correct:     2,
			Explanation: `Gold's chemical symbol is Au, from the Latin word "aurum".`,
			Difficulty:  domain.DifficultyEasy,
			Topic:       "chemistry",
		},
		{
			ID:          "sci_002",
			Prompt:      "What force keeps planets in orbit around the Sun?",
			Options:     []string{"Magnetic force", "Gravitational force", "Electric force", "Nuclear force"},
			Correct:     1,
			Explanation: "Gravitational force between the Sun and planets keeps them in orbit.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "physics",
		},
		{
			ID:          "sci_003",
			Prompt:      `Which organelle is known as the "powerhouse of the cell"?`,
			Options:     []string{"Nucleus", "Ribosome", "Mitochondria", "Chloroplast"},
			Correct:     2,
			Explanation: `Mitochondria produce ATP (energy) for the cell, earning the nickname "powerhouse".`,
			Difficulty:  domain.DifficultyMedium,
			Topic:       "biology",
		},
		{
			ID:          "sci_004",
			Prompt:      "What is the speed of light in vacuum?",
			Options:     []string{"300,000 km/s", "3,000 km/s", "30,000 km/s", "300,000,000 m/s"},
			Correct:     3,
			Explanation: "Speed of light = 3 × 10⁸ m/s = 300,000,000 m/s = 300,000 km/s.",
			Difficulty:  domain.DifficultyMedium,
			Topic:       "physics",
		},
		{
			ID:          "sci_005",
			Prompt:      "What gas do plants absorb during photosynthesis?",
			Options:     []string{"Oxygen", "Carbon dioxide", "Nitrogen", "Hydrogen"},
			Correct:     1,
			Explanation: "Plants absorb CO₂ and release O₂ during photosynthesis.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "biology",
		},
		{
			ID:          "sci_006",
			Prompt:      "What is the pH of pure water?",
			Options:     []string{"6", "7", "8", "9"},
			Correct:     1,
			Explanation: "Pure water has a pH of 7, which is neutral (neither acidic nor basic).",
			Difficulty:  domain.DifficultyMedium,
			Topic:       "chemistry",
		},
		{
			ID:          "sci_007",
			Prompt:      "Which planet is known as the Red Planet?",
			Options:     []string{"Venus", "Mars", "Jupiter", "Saturn"},
			Correct:     1,
			Explanation: "Mars appears red due to iron oxide (rust) on its surface.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "astronomy",
		},
		{
			ID:          "sci_008",
			Prompt:      "What is the hardest natural substance on Earth?",
			Options:     []string{"Gold", "Iron", "Diamond", "Quartz"},
			Correct:     2,
			Explanation: "Diamond is the hardest natural substance, ranking 10 on the Mohs scale.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "chemistry",
		},
		{
			ID:          "sci_009",
			Prompt:      "How many bones are in the adult human body?",
			Options:     []string{"198", "206", "215", "223"},
			Correct:     1,
			Explanation: "An adult human has 206 bones. Babies are born with about 270 bones.",
			Difficulty:  domain.DifficultyMedium,
			Topic:       "biology",
		},
		{
			ID:          "sci_010",
			Prompt:      "What is the formula for water?",
			Options:     []string{"H₂O", "HO₂", "H₂O₂", "H₃O"},
			Correct:     0,
			Explanation: "Water is H₂O - two hydrogen atoms bonded to one oxygen atom.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "chemistry",
		},
	},
	domain.SubjectEnglish: {
		{
			ID:          "eng_001",
			Prompt:      `Which word is a synonym for "happy"?`,
			Options:     []string{"Sad", "Joyful", "Angry", "Tired"},
			Correct:     1,
			Explanation: `"Joyful" means happy or filled with joy.`,
			Difficulty:  domain.DifficultyEasy,
			Topic:       "vocabulary",
		},
		{
			ID:          "eng_002",
			Prompt:      `Identify the verb in this sentence: "The cat sleeps peacefully."`,
			Options:     []string{"cat", "sleeps", "peacefully", "The"},
			Correct:     1,
			Explanation: `"Sleeps" is the action word (verb) in this sentence.`,
			Difficulty:  domain.DifficultyEasy,
			Topic:       "grammar",
		},
		{
			ID:          "eng_003",
			Prompt:      `What is the past tense of "run"?`,
			Options:     []string{"runned", "ran", "running", "runs"},
			Correct:     1,
			Explanation: `The past tense of "run" is "ran" (irregular verb).`,
			Difficulty:  domain.DifficultyEasy,
			Topic:       "grammar",
		},
		{
			ID:      "eng_004",
			Prompt:  "Which sentence uses correct punctuation?",
			Options: []string{"Hello, how are you.", "Hello how are you?", "Hello, how are you?", "Hello; how are you."},
			Correct: 2,
			Explanation: `Questions should end with a question mark, and a comma is needed after "Hello".`,
			Difficulty:  domain.DifficultyMedium,
			Topic:       "punctuation",
		},
		{
			ID:          "eng_005",
			Prompt:      `What type of word is "quickly" in: "She ran quickly"?`,
			Options:     []string{"Noun", "Verb", "Adjective", "Adverb"},
			Correct:     3,
			Explanation: `"Quickly" modifies the verb "ran" and tells us how she ran, making it an adverb.`,
			Difficulty:  domain.DifficultyMedium,
			Topic:       "grammar",
		},
		{
			ID:          "eng_006",
			Prompt:      "Choose the correct spelling:",
			Options:     []string{"Recieve", "Receive", "Receave", "Recive"},
			Correct:     1,
			Explanation: `The correct spelling is "receive" - remember "i before e except after c".`,
			Difficulty:  domain.DifficultyMedium,
			Topic:       "spelling",
		},
		{
			ID:      "eng_007",
			Prompt:  "What is a metaphor?",
			Options: []string{"A direct comparison using like or as", "A comparison without using like or as", "A repeated sound", "An exaggeration"},
			Correct: 1,
			Explanation: `A metaphor is a direct comparison that doesn't use "like" or "as" (e.g., "Life is a journey").`,
			Difficulty:  domain.DifficultyHard,
			Topic:       "literature",
		},
		{
			ID:          "eng_008",
			Prompt:      `Which is the correct plural of "child"?`,
			Options:     []string{"childs", "childrens", "children", "childes"},
			Correct:     2,
			Explanation: `"Children" is the correct irregular plural form of "child".`,
			Difficulty:  domain.DifficultyEasy,
			Topic:       "grammar",
		},
		{
			ID:          "eng_009",
			Prompt:      `What does the prefix "un-" mean in "unhappy"?`,
			Options:     []string{"very", "not", "again", "before"},
			Correct:     1,
			Explanation: `The prefix "un-" means "not", so "unhappy" means "not happy".`,
			Difficulty:  domain.DifficultyEasy,
			Topic:       "vocabulary",
		},
		{
			ID:      "eng_010",
			Prompt:  "Which sentence is in passive voice?",
			Options: []string{"The dog chased the cat.", "Mary reads the book.", "The cake was eaten by John.", "They are playing football."},
			Correct: 2,
			Explanation: `Passive voice: "The cake was eaten by John." The subject receives the action.`,
			Difficulty:  domain.DifficultyHard,
			Topic:       "grammar",
		},
	},
	domain.SubjectSocial: {
		{
			ID:          "soc_001",
			Prompt:      "Who was the first Prime Minister of India?",
			Options:     []string{"Mahatma Gandhi", "Jawaharlal Nehru", "Sardar Patel", "Dr. APJ Abdul Kalam"},
			Correct:     1,
			Explanation: "Jawaharlal Nehru became India's first Prime Minister on August 15, 1947.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "history",
		},
		{
			ID:          "soc_002",
			Prompt:      `Which river is known as the "Ganga of the South"?`,
			Options:     []string{"Krishna", "Godavari", "Kaveri", "Narmada"},
			Correct:     2,
			Explanation: `The Kaveri river is often called the "Ganga of the South" due to its religious significance.`,
			Difficulty:  domain.DifficultyMedium,
			Topic:       "geography",
		},
		{
			ID:          "soc_003",
			Prompt:      "In which year did India gain independence?",
			Options:     []string{"1946", "1947", "1948", "1949"},
			Correct:     1,
			Explanation: "India gained independence from British rule on August 15, 1947.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "history",
		},
		{
			ID:          "soc_004",
			Prompt:      "What is the capital of Rajasthan?",
			Options:     []string{"Jodhpur", "Udaipur", "Jaipur", "Kota"},
			Correct:     2,
			Explanation: "Jaipur, also known as the Pink City, is the capital of Rajasthan.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "geography",
		},
		{
			ID:      "soc_005",
			Prompt:  `Which fundamental right is known as the "Heart and Soul" of the Constitution?`,
			Options: []string{"Right to Equality", "Right to Constitutional Remedies", "Right to Freedom", "Right to Life"},
			Correct: 1,
			Explanation: `Dr. Ambedkar called the Right to Constitutional Remedies the "Heart and Soul" of the Constitution.`,
			Difficulty:  domain.DifficultyHard,
			Topic:       "civics",
		},
		{
			ID:          "soc_006",
			Prompt:      "Which is the longest river in India?",
			Options:     []string{"Yamuna", "Ganga", "Brahmaputra", "Godavari"},
			Correct:     1,
			Explanation: "The Ganga is the longest river in India, flowing 2,525 km from the Himalayas to the Bay of Bengal.",
			Difficulty:  domain.DifficultyMedium,
			Topic:       "geography",
		},
		{
			ID:          "soc_007",
			Prompt:      "Who wrote the Indian National Anthem?",
			Options:     []string{"Rabindranath Tagore", "Bankim Chandra Chattopadhyay", "Sarojini Naidu", "Subhash Chandra Bose"},
			Correct:     0,
			Explanation: `Rabindranath Tagore wrote "Jana Gana Mana", India's National Anthem.`,
			Difficulty:  domain.DifficultyMedium,
			Topic:       "history",
		},
		{
			ID:          "soc_008",
			Prompt:      "Which mountain range separates Europe and Asia?",
			Options:     []string{"Himalayas", "Alps", "Ural Mountains", "Rockies"},
			Correct:     2,
			Explanation: "The Ural Mountains form the traditional boundary between Europe and Asia.",
			Difficulty:  domain.DifficultyMedium,
			Topic:       "geography",
		},
		{
			ID:          "soc_009",
			Prompt:      "What is the currency of Japan?",
			Options:     []string{"Yuan", "Won", "Yen", "Ringgit"},
			Correct:     2,
			Explanation: "The Japanese Yen (¥) is the official currency of Japan.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "geography",
		},
		{
			ID:          "soc_010",
			Prompt:      "Which Mughal emperor built the Taj Mahal?",
			Options:     []string{"Akbar", "Shah Jahan", "Humayun", "Aurangzeb"},
			Correct:     1,
			Explanation: "Shah Jahan built the Taj Mahal in memory of his wife Mumtaz Mahal.",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "history",
		},
	},
}
