package testcases

// All contains all test cases, grouped by category.
// The category name is used as a prefix in file names.
var All = map[string][]TestCase{
	"uniform":  uniformCases,
	"spot":     spotCases,
	"gradient": gradientCases,
	"shape":    shapeCases,
}
