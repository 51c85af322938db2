package joiner

const overlayScript = `() => {
	const phrases = [
		'gemini is taking notes',
		'being recorded and transcribed',
		'being recorded',
		'this video call is being recorded',
		'this call is being recorded',
		'recording in progress',
	];
	const visible = (el) => {
		const r = el.getBoundingClientRect();
		return r.width > 0 && r.height > 0;
	};
	const label = (el) => ((el.innerText || el.getAttribute('aria-label') || '') + '').trim();
	const buttons = Array.from(document.querySelectorAll('button, [role="button"]')).filter(visible);
	const text = ((document.body && document.body.innerText) || '').toLowerCase();
	let acted = false;
	if (phrases.some((p) => text.includes(p))) {
		const joins = buttons.filter((b) => label(b).toLowerCase() === 'join now');
		if (joins.length > 0) {
			joins[joins.length - 1].click();
			acted = true;
		}
	}
	const ack = buttons.find((b) => /^(got it|dismiss)$/i.test(label(b)));
	if (ack) {
		ack.click();
		acted = true;
	}
	return acted ? 'clicked' : 'none';
}`

const focusScript = `() => {
	const el = document.querySelector("[class*='video'], main, [role='main'], [class*='content']") || document.body;
	if (!el) return 'none';
	if (!el.hasAttribute('tabindex')) el.setAttribute('tabindex', '-1');
	el.focus();
	return 'focused';
}`

const leaveScript = `() => {
	const btn = document.querySelector("[aria-label*='Leave call' i], [aria-label*='Leave meeting' i], [data-tooltip*='Leave call' i]");
	if (!btn) return 'none';
	btn.click();
	return 'clicked';
}`

const leaveConfirmScript = `() => {
	const buttons = Array.from(document.querySelectorAll('button, [role="button"]'));
	const confirm = buttons.find((b) => /^(leave call|leave meeting|just leave the call|leave)$/i.test(((b.innerText || '') + '').trim()));
	if (!confirm) return 'none';
	confirm.click();
	return 'clicked';
}`
