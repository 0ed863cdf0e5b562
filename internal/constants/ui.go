package constants

// HeaderSeparatorLength is the length of the header separator line.
const HeaderSeparatorLength = 50

// LocalsPreviewLimit is the maximum number of local variable names shown when
// summarizing a Break snapshot.
const LocalsPreviewLimit = 10

// StackPreviewLimit is the maximum number of stack frames shown when
// summarizing a Break snapshot.
const StackPreviewLimit = 3

// ErrorPreviewLimit is the maximum number of build errors analyzed or listed
// in summaries.
const ErrorPreviewLimit = 5
