package capture

// Each strategy returns a JSON array of {speaker, text} candidates. They are
// tried in order; structured attributes give the best speaker attribution.
type strategy struct {
	name   string
	script string
}

const visibleHelper = `
	const visible = (el) => {
		const r = el.getBoundingClientRect();
		return r.width > 0 && r.height > 0;
	};
	const clean = (s) => ((s || '') + '').trim();`

var strategies = []strategy{
	{"message attributes", `() => {` + visibleHelper + `
	const out = [];
	document.querySelectorAll('[data-message-text]').forEach((el) => {
		if (!visible(el)) return;
		const sender = el.closest('[data-sender-name]') || el.closest('[data-self-name]');
		const speaker = sender ? clean(sender.getAttribute('data-sender-name') || sender.getAttribute('data-self-name')) : '';
		out.push({ speaker, text: clean(el.getAttribute('data-message-text') || el.innerText) });
	});
	return JSON.stringify(out);
}`},
	{"sender containers", `() => {` + visibleHelper + `
	const out = [];
	document.querySelectorAll('[data-sender-name], [data-self-name]').forEach((el) => {
		if (!visible(el)) return;
		const speaker = clean(el.getAttribute('data-sender-name') || el.getAttribute('data-self-name'));
		let text = clean(el.innerText);
		if (speaker && text.startsWith(speaker)) text = clean(text.slice(speaker.length));
		out.push({ speaker, text });
	});
	return JSON.stringify(out);
}`},
	{"meet caption classes", `() => {` + visibleHelper + `
	const out = [];
	document.querySelectorAll('.iTTPOb, .TBMuR, .iOzk7, .a4cQT, .zs7s8d, .CNusmb, .Mz6pEf, .NWpY1c').forEach((el) => {
		if (visible(el)) out.push({ speaker: '', text: clean(el.innerText) });
	});
	return JSON.stringify(out);
}`},
	{"caption containers", `() => {` + visibleHelper + `
	const out = [];
	document.querySelectorAll("div[class*='caption'], div[class*='subtitle']").forEach((el) => {
		if (visible(el)) out.push({ speaker: '', text: clean(el.innerText) });
	});
	return JSON.stringify(out);
}`},
	{"live regions", `() => {` + visibleHelper + `
	const out = [];
	document.querySelectorAll("[aria-live='polite'], [aria-live='assertive']").forEach((el) => {
		if (!visible(el)) return;
		const lines = clean(el.innerText).split('\n').map(clean).filter(Boolean);
		if (lines.length > 1 && lines[0].length < 60) {
			out.push({ speaker: lines[0], text: lines.slice(1).join(' ') });
		} else if (lines.length > 0) {
			out.push({ speaker: '', text: lines.join(' ') });
		}
	});
	return JSON.stringify(out);
}`},
	{"regions", `() => {` + visibleHelper + `
	const out = [];
	document.querySelectorAll("[role='region']").forEach((el) => {
		if (visible(el)) out.push({ speaker: '', text: clean(el.innerText) });
	});
	return JSON.stringify(out);
}`},
}

var endedTexts = []string{
	"You have been removed from the meeting",
	"The meeting has ended",
	"You left the meeting",
	"Return to home screen",
}
