package vk

import "encoding/json"

// Button texts shared with the dispatch logic in handler.go.
const (
	btnTextNewQuestion = "Новый вопрос"
	btnTextSurrender   = "Сдаться"
	btnTextMyScore     = "Мой счет"
)

type keyboard struct {
	OneTime bool       `json:"one_time"`
	Buttons [][]button `json:"buttons"`
}

type button struct {
	Action buttonAction `json:"action"`
	Color  string       `json:"color"`
}

type buttonAction struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

func textButton(label string) button {
	return button{
		Action: buttonAction{Type: "text", Label: label},
		Color:  "primary",
	}
}

// QuizKeyboard returns the JSON reply keyboard attached to every message.
func QuizKeyboard() (string, error) {
	kb := keyboard{
		OneTime: true,
		Buttons: [][]button{
			{textButton(btnTextNewQuestion), textButton(btnTextSurrender)},
			{textButton(btnTextMyScore)},
		},
	}

	data, err := json.Marshal(kb)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
