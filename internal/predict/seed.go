package predict

// seedVocabulary primes a fresh dictionary so completions work before any
// resumes or postings exist. Keys are form field names.
var seedVocabulary = map[string][]string{
	"skills": {
		"JavaScript", "TypeScript", "React", "Redux", "Node.js", "Express", "MongoDB",
		"PostgreSQL", "MySQL", "Redis", "GraphQL", "REST", "Python", "Django", "Flask",
		"Java", "Spring", "Kotlin", "Swift", "Go", "Rust", "C++", "C#", ".NET", "Docker",
		"Kubernetes", "Terraform", "AWS", "Azure", "GCP", "Linux", "Git", "HTML", "CSS",
		"Tailwind", "Angular", "Vue", "Next.js", "Jenkins", "Kafka", "RabbitMQ",
		"Elasticsearch", "Pandas", "NumPy", "TensorFlow", "PyTorch", "SQL", "Figma",
		"Agile", "Scrum", "Communication", "Leadership",
	},
	"jobTitle": {
		"Developer", "Engineer", "Software", "Senior", "Junior", "Lead", "Principal",
		"Frontend", "Backend", "Fullstack", "Manager", "Intern", "Analyst", "Architect",
		"Designer", "Consultant", "Administrator", "Scientist", "Specialist", "DevOps",
	},
	"degree": {
		"Bachelor", "Master", "Doctorate", "Diploma", "Associate", "Science", "Arts",
		"Engineering", "Technology", "Computer", "Information", "Business",
		"Administration", "Mathematics", "Physics",
	},
	"institution": {
		"University", "College", "Institute", "School", "Academy", "Technology",
		"National", "State",
	},
	"duration": {
		"months", "years", "January", "February", "March", "April", "June", "July",
		"August", "September", "October", "November", "December", "Present",
	},
	"certifications": {
		"Certified", "Professional", "Associate", "Practitioner", "Solutions",
		"Architect", "Developer", "Administrator", "Scrum", "Master", "PMP",
	},
	"hobbies": {
		"Reading", "Running", "Cycling", "Swimming", "Photography", "Traveling",
		"Cooking", "Chess", "Music", "Painting", "Hiking", "Gaming", "Volunteering",
	},
}

// NewSeededDictionary returns a dictionary primed with the seed vocabulary.
func NewSeededDictionary() *Dictionary {
	d := NewDictionary()
	for field, words := range seedVocabulary {
		for _, w := range words {
			d.AddWord(field, w, 1)
		}
	}
	return d
}
