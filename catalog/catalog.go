// Package catalog is the read-only in-memory repository of published posts.
// It stands in for a remote content service; engagement state never lives here.
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/snowcodeer/echo-backend/models"
)

// Catalog answers lookup, filter and search queries over the post set.
// All queries are synchronous and side-effect free.
type Catalog struct {
	posts []models.Post
}

// New returns a catalog seeded with the demo content set.
func New() *Catalog {
	return &Catalog{posts: seedPosts()}
}

// GetPostByID returns the post with the given id.
func (c *Catalog) GetPostByID(id string) (models.Post, bool) {
	for _, p := range c.posts {
		if p.ID == id {
			return p, true
		}
		for _, r := range p.ReplyPosts {
			if r.ID == id {
				return r, true
			}
		}
	}
	return models.Post{}, false
}

// GetForYouPosts returns the personalized feed selection.
func (c *Catalog) GetForYouPosts() []models.Post {
	return c.pick("post_1", "post_2", "post_3", "post_4")
}

// GetFriendsPosts returns posts from the user's friends.
func (c *Catalog) GetFriendsPosts() []models.Post {
	return c.pick("post_5", "post_6")
}

// GetFeaturedPosts returns the editorially featured selection.
func (c *Catalog) GetFeaturedPosts() []models.Post {
	return c.pick("elon_confession", "post_8", "post_9", "post_10")
}

// GetTrendingPosts returns the ten most liked posts.
func (c *Catalog) GetTrendingPosts() []models.Post {
	out := make([]models.Post, len(c.posts))
	copy(out, c.posts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// GetUserPosts returns posts whose author handle contains the given username.
func (c *Catalog) GetUserPosts(username string) []models.Post {
	needle := strings.ToLower(username)
	var out []models.Post
	for _, p := range c.posts {
		if strings.Contains(strings.ToLower(p.Username), needle) {
			out = append(out, p)
		}
	}
	return out
}

// SearchPosts matches the query against content, tags, display names and handles.
func (c *Catalog) SearchPosts(query string) []models.Post {
	q := strings.ToLower(query)
	var out []models.Post
	for _, p := range c.posts {
		if strings.Contains(strings.ToLower(p.Content), q) ||
			strings.Contains(strings.ToLower(p.DisplayName), q) ||
			strings.Contains(strings.ToLower(p.Username), q) ||
			tagMatches(p.Tags, q) {
			out = append(out, p)
		}
	}
	return out
}

// GetPostsByTag returns posts carrying the tag (case-insensitive, exact).
func (c *Catalog) GetPostsByTag(tag string) []models.Post {
	t := strings.ToLower(tag)
	var out []models.Post
	for _, p := range c.posts {
		for _, pt := range p.Tags {
			if strings.ToLower(pt) == t {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Count returns the number of top-level posts.
func (c *Catalog) Count() int {
	return len(c.posts)
}

func (c *Catalog) pick(ids ...string) []models.Post {
	out := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.GetPostByID(id); ok {
			out = append(out, p)
		}
	}
	return out
}

func tagMatches(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

const demoAudioURL = "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav"

func ago(d time.Duration) time.Time {
	return time.Now().Add(-d)
}

func seedPosts() []models.Post {
	post1Replies := []models.Post{
		{
			ID: "reply_1_1", Username: "@sarah_speaks", DisplayName: "Sarah Kim",
			Avatar:   "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 22, VoiceStyle: "Warm Response",
			Likes: 45, Replies: 0, Timestamp: "1h", Tags: []string{"response", "connection"},
			Content:   "This is so true! I had a similar experience last week at a bookstore. Sometimes the universe puts exactly the right person in your path when you need them most.",
			CreatedAt: ago(1 * time.Hour),
		},
		{
			ID: "reply_1_2", Username: "@wisdom_voice", DisplayName: "Wisdom Voice",
			Avatar:   "https://images.pexels.com/photos/1130626/pexels-photo-1130626.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 28, VoiceStyle: "Thoughtful Reflection",
			Likes: 67, Replies: 0, Timestamp: "45m", Tags: []string{"wisdom", "serendipity"},
			Content:   "Beautiful reminder that meaningful connections often happen in the most unexpected places. These chance encounters teach us to stay open and present in every moment.",
			CreatedAt: ago(45 * time.Minute),
		},
	}

	post2Replies := []models.Post{
		{
			ID: "reply_2_1", Username: "@energy_boost", DisplayName: "Energy Boost",
			Avatar:   "https://images.pexels.com/photos/1043471/pexels-photo-1043471.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 19, VoiceStyle: "Enthusiastic Agreement",
			Likes: 32, Replies: 0, Timestamp: "3h", Tags: []string{"energy", "positivity"},
			Content:   "YES! Energy is everything! I love how you put this - it really is about choosing your vibe and watching it ripple out into the world.",
			CreatedAt: ago(3 * time.Hour),
		},
		{
			ID: "reply_2_2", Username: "@midnight_thinker", DisplayName: "MidnightThinker",
			Avatar:   "https://images.pexels.com/photos/1239291/pexels-photo-1239291.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 31, VoiceStyle: "Deep Contemplation",
			Likes: 58, Replies: 0, Timestamp: "2h", Tags: []string{"reflection", "impact"},
			Content:   "This makes me think about how we're all walking around broadcasting our internal state. What a responsibility and opportunity that is - to be intentional about the energy we share.",
			CreatedAt: ago(2 * time.Hour),
		},
	}

	return []models.Post{
		{
			ID: "post_1", Username: "@alex_voice", DisplayName: "Alex Chen",
			Avatar:   "https://images.pexels.com/photos/1239291/pexels-photo-1239291.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 28, VoiceStyle: "Chill Narrator",
			Likes: 142, Replies: 25, Timestamp: "2h", Tags: []string{"deepthoughts", "philosophy", "mindfulness"},
			Content:   "Just had the most incredible conversation with a stranger at the coffee shop. Sometimes the best connections happen when you least expect them. We talked about everything from philosophy to our favorite books, and I left feeling so inspired.",
			CreatedAt: ago(2 * time.Hour), HasReplies: true, ReplyPosts: post1Replies,
		},
		{
			ID: "post_2", Username: "@sarah_speaks", DisplayName: "Sarah Kim",
			Avatar:   "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 45, VoiceStyle: "Energetic Host",
			Likes: 89, Replies: 14, Timestamp: "4h", Tags: []string{"motivation", "energy", "morning"},
			Content:   "Morning motivation: Your energy introduces you before you even speak. Today I'm choosing to radiate positivity and see how it transforms not just my day, but the days of everyone I encounter.",
			CreatedAt: ago(4 * time.Hour), HasReplies: true, ReplyPosts: post2Replies,
		},
		{
			ID: "post_3", Username: "@mike_audio", DisplayName: "Mike Johnson",
			Avatar:   "https://images.pexels.com/photos/1222271/pexels-photo-1222271.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 52, VoiceStyle: "Wise Storyteller",
			Likes: 256, Replies: 47, Timestamp: "6h", Tags: []string{"confession", "anonymous", "secrets"},
			Content:   "I have a confession to make. For years, I've been afraid to share my real thoughts, hiding behind what I thought people wanted to hear. But authenticity is magnetic, and I'm done pretending to be anyone other than myself.",
			CreatedAt: ago(6 * time.Hour),
		},
		{
			ID: "post_4", Username: "@radiowave", DisplayName: "RadioWave",
			Avatar:   "https://images.pexels.com/photos/1043471/pexels-photo-1043471.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 38, VoiceStyle: "Peppy Radio Host",
			Likes: 178, Replies: 31, Timestamp: "8h", Tags: []string{"motivation", "energy", "morning"},
			Content:   "Good morning beautiful souls! Remember that every sunrise is a new opportunity to become the person you've always wanted to be. Let's make today absolutely incredible!",
			CreatedAt: ago(8 * time.Hour),
		},
		{
			ID: "post_5", Username: "@natalie_morning", DisplayName: "Natalie Chen",
			Avatar:   "https://images.pexels.com/photos/1130626/pexels-photo-1130626.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 42, VoiceStyle: "Warm Morning Voice",
			Likes: 234, Replies: 45, Timestamp: "1h", Tags: []string{"morning", "coffee", "gratitude"},
			Content:   "Good morning everyone! Just had my first cup of coffee and I'm feeling so grateful for this beautiful day. There's something magical about morning light streaming through the windows.",
			CreatedAt: ago(1 * time.Hour),
		},
		{
			ID: "post_6", Username: "@encode_club", DisplayName: "Encode Club",
			Avatar:   "https://images.pexels.com/photos/1181686/pexels-photo-1181686.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 35, VoiceStyle: "Tech Educator",
			Likes: 567, Replies: 89, Timestamp: "3h", Tags: []string{"coding", "education", "web3"},
			Content:   "Today we're diving deep into smart contract security. Remember, in Web3, your code is your contract with the world. Every line matters, every function call is a promise. Let's build the future responsibly.",
			CreatedAt: ago(3 * time.Hour),
		},
		{
			ID: "post_7", Username: "@midnight_thinker", DisplayName: "MidnightThinker",
			Avatar:   "https://images.pexels.com/photos/1239291/pexels-photo-1239291.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 45, VoiceStyle: "Deep Narrator Voice",
			Likes: 892, Replies: 134, Timestamp: "2h", Tags: []string{"deepthoughts", "philosophy", "existence"},
			Content:   "What if consciousness is just the universe trying to understand itself through our eyes? Every thought we have is a cosmic conversation.",
			CreatedAt: ago(2 * time.Hour),
		},
		{
			ID: "post_8", Username: "@wisdom_voice", DisplayName: "Wisdom Voice",
			Avatar:   "https://images.pexels.com/photos/1130626/pexels-photo-1130626.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 42, VoiceStyle: "Sage Storyteller",
			Likes: 2847, Replies: 234, Timestamp: "5h", Tags: []string{"wisdom", "life", "growth"},
			Content:   "Life has taught me that wisdom isn't about having all the answers. It's about asking better questions. Today I want to share three questions that completely changed how I see the world and my place in it.",
			CreatedAt: ago(5 * time.Hour),
		},
		{
			ID: "post_9", Username: "@energy_boost", DisplayName: "Energy Boost",
			Avatar:   "https://images.pexels.com/photos/1043471/pexels-photo-1043471.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 28, VoiceStyle: "Energetic Coach",
			Likes: 1923, Replies: 156, Timestamp: "7h", Tags: []string{"motivation", "energy", "success"},
			Content:   "Your Monday morning energy sets the tone for your entire week! I'm sharing my 5-minute ritual that transforms how I show up every single day. It's simple, powerful, and will change everything.",
			CreatedAt: ago(7 * time.Hour),
		},
		{
			ID: "post_10", Username: "@heartbreak_healer", DisplayName: "Heartbreak Healer",
			Avatar:   "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 35, VoiceStyle: "Gentle Counselor",
			Likes: 3156, Replies: 289, Timestamp: "9h", Tags: []string{"breakups", "healing", "selflove"},
			Content:   "Six months ago, I thought my world was ending. Today, I'm grateful for that heartbreak because it led me to the most important relationship of my life. The one with myself. Here's what I learned.",
			CreatedAt: ago(9 * time.Hour),
		},
		{
			ID: "elon_confession", Username: "@elonmusk", DisplayName: "Elon Musk",
			Avatar:   "https://images.pexels.com/photos/2182970/pexels-photo-2182970.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			AudioURL: demoAudioURL, Duration: 57, VoiceStyle: "Dramatic Reader",
			Likes: 15847, Replies: 2341, Timestamp: "3h", Tags: []string{"confession", "truth", "leadership"},
			Content:   "I need to confess something that's been weighing on me. Despite all the success, the rockets, the companies... I still feel like that awkward kid who just wanted to build cool things. Sometimes I wonder if I'm just really good at pretending to know what I'm doing. The truth is, every major decision terrifies me, but I've learned that courage isn't the absence of fear. It's acting despite it.",
			CreatedAt: ago(3 * time.Hour),
		},
	}
}
