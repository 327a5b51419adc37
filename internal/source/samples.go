package source

// Sample is a built-in explanation with its expected verdict.
type Sample struct {
	Title      string
	Text       string
	WantPassed bool
}

// Source returns the sample as a Source named after its title.
func (s Sample) Source() Source { return Literal(s.Title, s.Text) }

// Samples returns the built-in demonstration explanations.
func Samples() []Sample {
	return []Sample{
		{
			Title:      "Complete Explanation",
			WantPassed: true,
			Text: `
    Think of this function like a recipe book. Each recipe (function) has a list of
    ingredients (parameters) and steps to follow.

    Here's the flow:
    ` + "```" + `
    Input → [Process] → Output
              ↓
         [Validation]
    ` + "```" + `

    Let me walk through it:
    1. First, we receive the input
    2. Then we validate it
    3. Finally, we process and return the result

    Common mistake: Forgetting to validate the input can lead to errors downstream.
    `,
		},
		{
			Title:      "Missing Diagram",
			WantPassed: false,
			Text: `
    This is like a traffic light controlling the flow. First, it checks the condition,
    then it proceeds. Step 1 happens first, then step 2. Watch out for null values!
    `,
		},
		{
			Title:      "Missing Gotcha",
			WantPassed: false,
			Text: `
    Think of this like a filing cabinet. Here's the structure:
    ` + "```" + `
    [Cabinet]
      ├── [Drawer 1]
      └── [Drawer 2]
    ` + "```" + `
    First, we open the cabinet. Then we find the right drawer. Finally, we retrieve the file.
    `,
		},
	}
}
