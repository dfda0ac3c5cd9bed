package envsync

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	inputClosedMessageConstant    = "operator input closed before a valid answer was given"
	invalidAnswerTemplateConstant = "please answer with %s"
	answerChoiceTemplateConstant  = "'%s'"
	answerChoiceSeparatorConstant = " or "
	validationFeedbackTemplate    = "%s\n"
	lineTerminatorCharacterSet    = "\r\n"
)

// ErrInputClosed indicates the operator input ended while a question was pending.
var ErrInputClosed = errors.New(inputClosedMessageConstant)

// IOAnswerPrompter reads answers from an io.Reader, re-asking until one validates.
type IOAnswerPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOAnswerPrompter constructs a prompter from the provided reader and writer.
func NewIOAnswerPrompter(input io.Reader, output io.Writer) *IOAnswerPrompter {
	return &IOAnswerPrompter{reader: bufio.NewReader(input), writer: output}
}

// Ask writes the prompt, reads one line, and repeats until validate accepts the answer.
// The validation message is shown before each repeated prompt.
func (prompter *IOAnswerPrompter) Ask(prompt string, validate func(answer string) error) (string, error) {
	for {
		if prompter.writer != nil {
			if _, writeError := io.WriteString(prompter.writer, prompt); writeError != nil {
				return "", writeError
			}
		}

		response, readError := prompter.reader.ReadString('\n')
		if readError != nil && readError != io.EOF {
			return "", readError
		}
		answer := strings.TrimRight(response, lineTerminatorCharacterSet)

		validationError := validate(answer)
		if validationError == nil {
			return answer, nil
		}

		if readError == io.EOF {
			return "", ErrInputClosed
		}

		if prompter.writer != nil {
			fmt.Fprintf(prompter.writer, validationFeedbackTemplate, validationError.Error())
		}
	}
}

// ExactAnswer accepts only answers equal to one of the choices, case-sensitively.
func ExactAnswer(choices ...string) func(answer string) error {
	quotedChoices := make([]string, 0, len(choices))
	for _, choice := range choices {
		quotedChoices = append(quotedChoices, fmt.Sprintf(answerChoiceTemplateConstant, choice))
	}
	invalidAnswerError := fmt.Errorf(invalidAnswerTemplateConstant, strings.Join(quotedChoices, answerChoiceSeparatorConstant))

	return func(answer string) error {
		for _, choice := range choices {
			if answer == choice {
				return nil
			}
		}
		return invalidAnswerError
	}
}
