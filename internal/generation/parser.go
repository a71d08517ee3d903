package generation

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxPosts is the number of post variants the model is asked for.
const MaxPosts = 3

// Post is one drafted variant.
type Post struct {
	// Index is the 1-based variant number from the tag name (post1..post3).
	Index int    `json:"index"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ParsedContent is the structured form of a model response.
type ParsedContent struct {
	Comment string `json:"comment"`
	Posts   []Post `json:"posts"`
	Advice  string `json:"advice"`

	// Legacy is true when the text used none of the expected tags and must
	// be displayed as-is.
	Legacy bool `json:"legacy"`
}

// Tag names of the response format.
const (
	tagComment = "comment"
	tagAdvice  = "advice"
)

var (
	tagPatterns = compileTagPatterns()

	// titleLabelPattern matches an embedded "タイトル：..." first line.
	titleLabelPattern = regexp.MustCompile(`^\s*タイトル\s*[：:]\s*(.*?)\s*$`)
)

func postTag(i int) string      { return fmt.Sprintf("post%d", i) }
func postTitleTag(i int) string { return fmt.Sprintf("post%d_title", i) }

func compileTagPatterns() map[string]*regexp.Regexp {
	tags := []string{tagComment, tagAdvice}
	for i := 1; i <= MaxPosts; i++ {
		tags = append(tags, postTag(i), postTitleTag(i))
	}

	patterns := make(map[string]*regexp.Regexp, len(tags))
	for _, tag := range tags {
		patterns[tag] = regexp.MustCompile(`(?s)<` + tag + `>(.*?)</` + tag + `>`)
	}
	return patterns
}

// extract returns the trimmed content of the first <tag>...</tag> span and
// whether the span exists.
func extract(raw, tag string) (string, bool) {
	m := tagPatterns[tag].FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Parse decodes tagged model output. It never fails; text without any
// comment, advice or post body is returned with Legacy set.
func Parse(raw string) ParsedContent {
	comment, hasComment := extract(raw, tagComment)
	advice, hasAdvice := extract(raw, tagAdvice)

	posts := make([]Post, 0, MaxPosts)
	for i := 1; i <= MaxPosts; i++ {
		body, ok := extract(raw, postTag(i))
		if !ok {
			continue
		}
		posts = append(posts, parsePost(raw, i, body))
	}

	if !hasComment && !hasAdvice && len(posts) == 0 {
		return ParsedContent{Posts: []Post{}, Legacy: true}
	}

	return ParsedContent{
		Comment: comment,
		Posts:   posts,
		Advice:  advice,
	}
}

func parsePost(raw string, i int, body string) Post {
	if title, ok := extract(raw, postTitleTag(i)); ok {
		return Post{Index: i, Title: title, Body: body}
	}

	firstLine, rest, _ := strings.Cut(body, "\n")
	if m := titleLabelPattern.FindStringSubmatch(firstLine); m != nil && m[1] != "" {
		return Post{Index: i, Title: m[1], Body: strings.TrimSpace(rest)}
	}

	return Post{Index: i, Title: fmt.Sprintf("案 %d", i), Body: body}
}
