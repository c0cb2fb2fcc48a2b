package bot

import (
	"sync"

	tb "gopkg.in/telebot.v4"
)

// fakeAPI records platform calls and returns scripted results.
type fakeAPI struct {
	mu        sync.Mutex
	nextID    int
	sent      []sentCall
	edits     []editCall
	deleted   []tb.Editable
	pinned    []tb.Editable
	responded int

	sendErr   error
	pinErr    error
	memberErr error
	members   map[int64]*tb.ChatMember
}

type sentCall struct {
	to   tb.Recipient
	what interface{}
}

type editCall struct {
	msg  tb.Editable
	what interface{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 100, members: make(map[int64]*tb.ChatMember)}
}

func (f *fakeAPI) Send(to tb.Recipient, what interface{}, opts ...interface{}) (*tb.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.nextID++
	f.sent = append(f.sent, sentCall{to: to, what: what})
	return &tb.Message{ID: f.nextID, Chat: to.(*tb.Chat)}, nil
}

func (f *fakeAPI) Edit(msg tb.Editable, what interface{}, opts ...interface{}) (*tb.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, editCall{msg: msg, what: what})
	if m, ok := msg.(*tb.Message); ok {
		return m, nil
	}
	return &tb.Message{}, nil
}

func (f *fakeAPI) Delete(msg tb.Editable) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, msg)
	return nil
}

func (f *fakeAPI) Pin(msg tb.Editable, opts ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pinErr != nil {
		return f.pinErr
	}
	f.pinned = append(f.pinned, msg)
	return nil
}

func (f *fakeAPI) Respond(c *tb.Callback, resp ...*tb.CallbackResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responded++
	return nil
}

func (f *fakeAPI) ChatMemberOf(chat, user tb.Recipient) (*tb.ChatMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.memberErr != nil {
		return nil, f.memberErr
	}
	u, ok := user.(*tb.User)
	if !ok {
		return &tb.ChatMember{Role: tb.Member}, nil
	}
	if m, ok := f.members[u.ID]; ok {
		return m, nil
	}
	return &tb.ChatMember{User: u, Role: tb.Member}, nil
}

func (f *fakeAPI) sentWhat(i int) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[i].what
}

func (f *fakeAPI) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeAPI) lastEditText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) == 0 {
		return ""
	}
	if s, ok := f.edits[len(f.edits)-1].what.(string); ok {
		return s
	}
	return ""
}

// fakeContext satisfies just the context methods the handlers touch.
type fakeContext struct {
	tb.Context
	chat     *tb.Chat
	sender   *tb.User
	callback *tb.Callback
	message  *tb.Message
}

func (f *fakeContext) Chat() *tb.Chat         { return f.chat }
func (f *fakeContext) Sender() *tb.User       { return f.sender }
func (f *fakeContext) Callback() *tb.Callback { return f.callback }
func (f *fakeContext) Message() *tb.Message   { return f.message }

func callbackContext(chat *tb.Chat, sender *tb.User, data string) *fakeContext {
	return &fakeContext{
		chat:     chat,
		sender:   sender,
		callback: &tb.Callback{Sender: sender, Message: &tb.Message{ID: 7, Chat: chat}, Data: data},
	}
}
